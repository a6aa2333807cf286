package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/loykin/audiofetch/internal/common"
)

const (
	toolDownloadAudio   = "download_audio"
	toolGetServerConfig = "get_server_config"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool(toolDownloadAudio,
		mcp.WithDescription("Download an audio file from a URL with per-host authentication support. "+
			"Returns the audio bytes as an embedded resource."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("HTTP or HTTPS URL of the audio resource"),
		),
	), s.handleDownloadAudio)

	s.mcp.AddTool(mcp.NewTool(toolGetServerConfig,
		mcp.WithDescription("Get the current server configuration, excluding sensitive credentials."),
	), s.handleGetServerConfig)
}

// handleDownloadAudio fetches the resource and returns either an embedded
// blob resource or the failure serialized as a tagged JSON object. Fetch
// outcomes are always data; a non-nil error here would mean a caller bug.
func (s *Server) handleDownloadAudio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := common.GetLogger().WithTool(toolDownloadAudio)

	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := s.fetcher.Fetch(ctx, url)
	if !res.Success {
		logger.Warn("download failed", "url", url, "kind", string(res.ErrorKind))
		payload, merr := json.Marshal(res)
		if merr != nil {
			return mcp.NewToolResultError(res.ErrorMessage), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}

	logger.Info("download succeeded", "url", url, "filename", res.Filename, "size_bytes", res.SizeBytes)
	meta, merr := json.Marshal(res) // Data is excluded; the blob carries it
	if merr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render result for %s: %v", url, merr)), nil
	}
	blob := mcp.BlobResourceContents{
		URI:      fmt.Sprintf("file://%s", res.Filename),
		MIMEType: res.ContentType,
		Blob:     base64.StdEncoding.EncodeToString(res.Data),
	}
	return mcp.NewToolResultResource(string(meta), blob), nil
}

// handleGetServerConfig renders the non-secret configuration snapshot.
func (s *Server) handleGetServerConfig(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.cfg.Snapshot(s.router)
	payload, err := json.Marshal(snap)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render config: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
