// Package prompt provides implementations of driven.Prompter.
//
// Terminal asks questions on a line-oriented terminal. Static answers from
// values supplied up front, for adapters that receive the user's decision
// as part of a request.
package prompt
