// Package mcp exposes the workout session as Model Context Protocol tools, so
// an assistant can log exercises and read reports.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GymTrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("GymTrack workout log. Log strength sets and cardio sessions into the active workout, undo the last set, save the workout to history and read workout or history reports. Also computes BMI with a category and training plan."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolLogExercise, Handler: h.logExercise},
		server.ServerTool{Tool: toolRemoveLastItem, Handler: h.removeLastItem},
		server.ServerTool{Tool: toolSetWorkoutTitle, Handler: h.setWorkoutTitle},
		server.ServerTool{Tool: toolGetWorkoutReport, Handler: h.getWorkoutReport},
		server.ServerTool{Tool: toolSaveWorkout, Handler: h.saveWorkout},
		server.ServerTool{Tool: toolGetHistoryReport, Handler: h.getHistoryReport},
		server.ServerTool{Tool: toolComputeBMI, Handler: h.computeBMI},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resHistory, Handler: h.history},
		server.ServerResource{Resource: resCurrentWorkout, Handler: h.currentWorkout},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resHistory = mcp.NewResource(
	"gymtrack://history",
	"Workout History",
	mcp.WithResourceDescription("Every saved workout in order, with exercises and sets"),
	mcp.WithMIMEType("application/json"),
)

var resCurrentWorkout = mcp.NewResource(
	"gymtrack://workout",
	"Active Workout",
	mcp.WithResourceDescription("The workout currently being logged"),
	mcp.WithMIMEType("application/json"),
)
