// Package prompt implements small console questions: yes/no confirmation,
// typed input and path selection. All functions take the input and output
// streams explicitly so they can be driven by tests or pipes.
package prompt
