// Package server is a local HTTP preview of a story.
//
// The server renders frames on demand through a [pipeline.Runner], so frames
// share the runner's cache with the CLI export. Routes:
//
//	GET /                       HTML page with the steps and a sticky figure
//	GET /story.json             the story
//	GET /data.json              the dataset
//	GET /frames/{step}.{format} one frame; step -1 is the frame before the first step
//	GET /storyboard.svg         the step diagram
//	GET /healthz                liveness
//
// Frame requests accept an "at" query parameter (milliseconds since the step
// was entered) to render a sweep in progress.
package server
