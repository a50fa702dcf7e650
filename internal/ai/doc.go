/*
Package ai implements the AI request orchestration pipeline.

# Overview

A single entry point, Service.Process, turns a note-centric request (one of
five operations: summarise, read, translate, answer, similar) into a
provider-ready prompt, optionally enriches answer questions with live web
search context, calls the generative backend, and assembles a normalized
response.

# Pipeline

	Request -> Service -> (Searcher, best-effort) -> BuildPrompt -> Gemini -> Response

Search enrichment is best-effort: any provider failure degrades to "no
enrichment" and never aborts the request. The generative call is single-shot;
a transport failure or non-success status is a hard BackendError.

# Errors

ValidationError (caller fixable, missing required field),
UnsupportedOperationError (operation outside the fixed set), and BackendError
(generative provider fault). Malformed provider response bodies are surfaced
as sentinel answer text, not as errors.
*/
package ai
