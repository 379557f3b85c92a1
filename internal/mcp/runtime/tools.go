package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"undoc/internal/core/ports"
	"undoc/internal/engine/doc"
)

// Argument structs

type ScanArgs struct {
	Paths []string `json:"paths,omitempty" jsonschema:"description:Directories or files to scan instead of the configured scan paths"`
}

type CheckFileArgs struct {
	FilePath string `json:"file_path" jsonschema:"required,description:Path of the Ruby source file to check"`
}

type StatusArgs struct{}

type offenseReport struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "scan",
		Description: "Scans Ruby source trees and updates the documentation coverage state",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ScanArgs) (*mcp.CallToolResult, any, error) {
		start := time.Now()

		result, err := s.deps.Analysis.RunScan(ctx, ports.ScanRequest{Paths: args.Paths})
		if err != nil {
			return errorResult(fmt.Sprintf("Scan failed: %v", err)), nil, nil
		}

		msg := fmt.Sprintf("Scanned %d files: %d definitions checked, %d missing documentation comments in %.2fs",
			result.FilesScanned, result.Definitions, result.Offenses, time.Since(start).Seconds())
		for _, warning := range result.Warnings {
			msg += "\nwarning: " + warning
		}
		return textResult(msg), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_file",
		Description: "Checks one Ruby file and returns its missing documentation offenses",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CheckFileArgs) (*mcp.CallToolResult, any, error) {
		result, err := s.deps.Analysis.CheckFile(ctx, args.FilePath)
		if err != nil {
			return errorResult(fmt.Sprintf("Check failed: %v", err)), nil, nil
		}

		if len(result.Offenses) == 0 {
			return textResult(fmt.Sprintf("All %d top-level definitions in %s are documented or exempt.",
				result.Checked, result.Path)), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(offenseReports(result.Offenses), "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "status",
		Description: "Returns the current documentation coverage summary",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
		snapshot, err := s.deps.Analysis.SummarySnapshot(ctx)
		if err != nil {
			return errorResult(fmt.Sprintf("Status failed: %v", err)), nil, nil
		}

		result := map[string]any{
			"files_scanned":       snapshot.FileCount,
			"definitions_checked": snapshot.DefinitionCount,
			"offense_count":       len(snapshot.Offenses),
			"offenses":            offenseReports(snapshot.Offenses),
		}
		if len(snapshot.Exemptions) > 0 {
			exemptions := make(map[string]int, len(snapshot.Exemptions))
			for reason, count := range snapshot.Exemptions {
				exemptions[reason.String()] = count
			}
			result["exemptions"] = exemptions
		}

		jsonBytes, _ := json.MarshalIndent(result, "", "  ")
		return textResult(string(jsonBytes)), nil, nil
	})
}

func offenseReports(offenses []doc.Offense) []offenseReport {
	reports := make([]offenseReport, 0, len(offenses))
	for _, o := range offenses {
		reports = append(reports, offenseReport{
			File:    o.File,
			Line:    o.Line,
			Kind:    o.Kind.String(),
			Name:    o.Name,
			Message: o.Message,
		})
	}
	return reports
}
