// Package errors provides the structured error type shared by the emulator.
//
// Every named failure of the control surface is an *AppError carrying a
// machine-readable ErrorCode. Codes are grouped into four categories:
// construction errors, bounds/argument errors, contained module failures and
// invariant violations. Only the first, second and fourth ever reach a
// caller; module failures are turned into ACTION_ERROR messages by the
// lifecycle driver.
package errors
