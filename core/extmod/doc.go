// Package extmod defines the contract between the dispatch service and
// user-provided external dispatch modules: how a module file is located on
// disk and the JSON request/response protocol spoken over its stdin/stdout.
//
// Modules are plain executables. Every invocation starts a fresh process, so
// edits to the module file take effect on the next dispatch call without
// restarting the service.
package extmod
