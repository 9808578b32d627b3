// Package generation turns a visitor's free-text input into creative copy
// using the Gemini generateContent API.
//
// A Workflow validates the input, renders one of four prompt templates
// (slogans, elevator pitch, social hook, persona answer), sends the request
// through a retrying executor, and extracts and formats the generated text.
// Progress and results are reported through the UI interface, which the
// caller implements; the workflow owns no presentation state of its own.
//
// A Coordinator wraps a Workflow for a single UI and guarantees that only the
// most recent run drives that UI: starting a run cancels the previous one.
package generation
