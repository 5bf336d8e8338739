// Package cli implements the ai-calendar command line interface.
//
// The default mode is an interactive chat loop: each line is sent to the
// assistant, which may answer conversationally or act on the calendar.
// Lines starting with "/" are local commands handled without a model call
// (/events, /export, /help, /quit). The --once flag sends a single message
// and exits, which is handy for scripting.
package cli
