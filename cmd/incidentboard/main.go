// Package main runs the incident board: a local-first registry of users
// and incident reports persisted in a file or SQLite store, driven by an
// interactive shell.
package main

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/IncidentBoard/internal/config"
	"github.com/atinyakov/IncidentBoard/internal/db"
	"github.com/atinyakov/IncidentBoard/internal/logger"
	"github.com/atinyakov/IncidentBoard/internal/models"
	"github.com/atinyakov/IncidentBoard/internal/repository"
	"github.com/atinyakov/IncidentBoard/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	// Open the configured storage backend.
	var kv repository.KV
	switch options.Backend {
	case config.BackendSQLite:
		sqlDB, err := db.InitSQLite(options.StoragePath)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer func() { _ = sqlDB.Close() }()
		kv = repository.NewSQLiteKV(sqlDB)
	case config.BackendFile:
		fileKV, err := repository.NewFileKV(options.StoragePath)
		if err != nil {
			zapLogger.Fatal("cannot open storage file", zap.Error(err))
		}
		kv = fileKV
	default:
		zapLogger.Fatal("unknown storage backend", zap.String("backend", options.Backend))
	}

	// Wire the board and restore any previous session.
	board := service.NewBoard(kv, zapLogger)
	if err := board.Restore(context.Background()); err != nil {
		zapLogger.Fatal("cannot restore session", zap.Error(err))
	}

	zapLogger.Info("incident board ready",
		zap.String("backend", options.Backend),
		zap.String("path", options.StoragePath),
	)
	repl(board)
}

// repl runs the interactive shell loop, accepting commands to manage the
// board. All user-facing messaging lives here; the services only return
// errors.
func repl(board *service.Board) {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)
	out := os.Stdout

	fmt.Fprintf(out, "Logged in as: %s\n", board.DisplayName())

	for {
		fmt.Fprint(out, "incidentboard> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		args := strings.Fields(strings.TrimSpace(line))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Fprintln(out, "Available commands: help, register, login, logout, whoami, report, list, search, exit")
		case "register":
			handleRegister(ctx, board, reader, out)
		case "login":
			handleLogin(ctx, board, reader, out)
		case "logout":
			if err := board.Logout(ctx); err != nil {
				fmt.Fprintln(out, errMessage(err))
				continue
			}
			fmt.Fprintln(out, "Logged out")
		case "whoami":
			fmt.Fprintln(out, board.DisplayName())
		case "report":
			handleReport(ctx, board, reader, out)
		case "list":
			incidents, err := board.ListIncidents(ctx)
			if err != nil {
				fmt.Fprintln(out, errMessage(err))
				continue
			}
			printIncidents(out, incidents)
		case "search":
			handleSearch(ctx, board, reader, out)
		case "exit":
			fmt.Fprintln(out, "Bye")
			return
		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func handleRegister(ctx context.Context, board *service.Board, r *bufio.Reader, w io.Writer) {
	var in service.RegisterInput
	var err error
	if in.LastName, err = promptLine(r, "Last name", w); err != nil {
		return
	}
	if in.FirstName, err = promptLine(r, "First name", w); err != nil {
		return
	}
	if in.Program, err = promptLine(r, "Program", w); err != nil {
		return
	}
	if in.Matricule, err = promptLine(r, "Matricule", w); err != nil {
		return
	}
	if in.Email, err = promptLine(r, "Email", w); err != nil {
		return
	}
	if in.Password, err = promptPassword(w); err != nil {
		return
	}
	if in.Anonymous, err = promptBool(r, "Always report anonymously", w); err != nil {
		return
	}

	user, err := board.Register(ctx, in)
	if err != nil {
		fmt.Fprintln(w, errMessage(err))
		return
	}
	fmt.Fprintf(w, "Registered %s %s. You can log in now.\n", user.FirstName, user.LastName)
}

func handleLogin(ctx context.Context, board *service.Board, r *bufio.Reader, w io.Writer) {
	matricule, err := promptLine(r, "Matricule", w)
	if err != nil {
		return
	}
	anonymous, err := promptBool(r, "Stay anonymous this session", w)
	if err != nil {
		return
	}

	sess, err := board.Login(ctx, matricule, anonymous)
	if err != nil {
		fmt.Fprintln(w, errMessage(err))
		return
	}
	fmt.Fprintf(w, "Welcome %s!\n", sess.FirstName)
}

func handleReport(ctx context.Context, board *service.Board, r *bufio.Reader, w io.Writer) {
	var in service.SubmitInput
	var err error
	if in.Title, err = promptLine(r, "Title", w); err != nil {
		return
	}
	if in.Category, err = promptLine(r, "Category", w); err != nil {
		return
	}
	if in.Description, err = promptLine(r, "Description", w); err != nil {
		return
	}
	urgency, err := promptLine(r, "Urgency (Low/Medium/High)", w)
	if err != nil {
		return
	}
	in.Urgency = models.Urgency(urgency)

	incident, err := board.SubmitIncident(ctx, in)
	if err != nil {
		fmt.Fprintln(w, errMessage(err))
		return
	}
	fmt.Fprintf(w, "Report submitted as %s\n", incident.ReportedBy)
}

func handleSearch(ctx context.Context, board *service.Board, r *bufio.Reader, w io.Writer) {
	search, err := promptLine(r, "Search text", w)
	if err != nil {
		return
	}
	category, err := promptLine(r, "Category (empty for all)", w)
	if err != nil {
		return
	}

	incidents, err := board.FilterIncidents(ctx, service.FilterQuery{
		SearchText: search,
		Category:   category,
	})
	if err != nil {
		fmt.Fprintln(w, errMessage(err))
		return
	}
	printIncidents(w, incidents)
}

// printIncidents renders the reports newest first.
func printIncidents(w io.Writer, incidents []models.Incident) {
	if len(incidents) == 0 {
		fmt.Fprintln(w, "No incidents reported")
		return
	}
	for _, inc := range incidents {
		fmt.Fprintf(w, "%s [%s]\nCategory: %s\n%s\nBy %s on %s\n---\n",
			inc.Title, inc.Urgency, inc.Category, inc.Description,
			inc.ReportedBy, inc.SubmittedAt.Format(time.RFC822))
	}
	fmt.Fprintf(w, "%d incident(s)\n", len(incidents))
}

// errMessage maps service errors to user-facing text.
func errMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrValidation):
		return "Invalid input: " + err.Error()
	case errors.Is(err, service.ErrDuplicate):
		return "Matricule or email already in use"
	case errors.Is(err, service.ErrNotFound):
		return "Matricule not found"
	}
	return err.Error()
}
