// Package api handles incoming HTTP requests, request validation and response
// formatting. It adapts the generation workflow and the session store to a
// small JSON API consumed by the portfolio page.
package api
