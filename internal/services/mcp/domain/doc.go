// Package domain defines the MCP tools that expose launch data and chart
// specifications to model clients.
package domain
