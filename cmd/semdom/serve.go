package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/semanticdom/semdom/audit"
	"github.com/semanticdom/semdom/semdom"
)

var serveAuditDB string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP tool server on stdio",
	Long: `Serve exposes the semantic tools over the Model Context Protocol on
stdin/stdout: parse_html, semantic_query, semantic_navigate,
semantic_list_landmarks, semantic_list_interactables,
semantic_state_graph and semantic_certification.

With --audit-db every tool call is recorded in a SQLite audit log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := slog.Default()
		session := semdom.NewSession(cfg, logger)

		if serveAuditDB != "" {
			db, err := sql.Open("sqlite", serveAuditDB)
			if err != nil {
				return fmt.Errorf("open audit db: %w", err)
			}
			defer db.Close()
			db.Exec("PRAGMA journal_mode=WAL")

			auditLog := audit.NewSQLiteLogger(db)
			if err := auditLog.Init(); err != nil {
				return err
			}
			defer auditLog.Close()
			session.Use(audit.Middleware(auditLog, ""))
			logger.Info("audit log enabled", "path", serveAuditDB)
		}

		srv := mcp.NewServer(&mcp.Implementation{
			Name:    "semdom",
			Version: semdom.Version,
		}, nil)
		session.RegisterMCP(srv)

		logger.Info("mcp server listening on stdio")
		return srv.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAuditDB, "audit-db", "", "path to SQLite audit log")
}
