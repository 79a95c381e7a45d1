package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/pandhu/duitbot/internal/dialogue"
	"github.com/pandhu/duitbot/internal/dispatch"
	"github.com/pandhu/duitbot/internal/goal"
	"github.com/pandhu/duitbot/internal/insight"
	"github.com/pandhu/duitbot/internal/intent"
	"github.com/pandhu/duitbot/internal/model"
	"github.com/pandhu/duitbot/internal/storage"
	"github.com/pandhu/duitbot/internal/tips"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Open a conversational session with the assistant.

Ketik pesan seperti ke teman: "catat pengeluaran 50rb makan siang",
"atur budget makan 1jt", "tambah goal tabungan 10jt desember 2026".
Ketik "bantuan" untuk panduan lengkap, "keluar" untuk mengakhiri.`,
		RunE: runChat,
	}

	cmd.Flags().String("user", "local", "user ID for this session")

	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user")

	dbPath, err := databasePath()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	classifier, err := intent.New()
	if err != nil {
		return fmt.Errorf("failed to train classifier: %w", err)
	}

	insights := insight.NewService(store)
	planner := goal.NewPlanner(insights)
	contexts := dialogue.NewStore()
	go contexts.Run(ctx, time.Minute)

	dispatcher := dispatch.New(store, insights, planner, tips.NewService(), classifier, contexts)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "Anda: ",
		HistoryFile:     filepath.Join(os.TempDir(), ".duitbot_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "keluar",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	fmt.Println("💬 Halo! Saya asisten keuangan Anda. Ketik \"bantuan\" untuk panduan, \"keluar\" untuk mengakhiri.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Println("\nSampai jumpa! 👋")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "keluar" || input == "exit" || input == "quit" {
			fmt.Println("Sampai jumpa! 👋")
			return nil
		}

		reply, err := dispatcher.Handle(ctx, userID, input)
		if err != nil {
			fmt.Println("Maaf, terjadi kesalahan. Coba lagi ya.")
			continue
		}

		fmt.Println(renderReply(reply))
	}
}

// renderReply flattens a structured reply into terminal text.
func renderReply(reply model.Reply) string {
	switch reply.Kind {
	case model.ReplyConfirmation:
		var sb strings.Builder
		sb.WriteString(reply.Prompt)
		for _, opt := range reply.Options {
			sb.WriteString("\n  • " + opt)
		}
		return sb.String()

	case model.ReplyReport:
		return renderReport(reply)

	default:
		return reply.Content
	}
}

func renderReport(reply model.Reply) string {
	var sb strings.Builder
	sb.WriteString(reply.Content + "\n")

	s := reply.Summary
	if s == nil {
		return sb.String()
	}

	sb.WriteString("\n💰 Pemasukan: Rp " + dispatch.FormatRupiah(s.TotalIncome))
	for _, ct := range s.ByIncomeCategory {
		sb.WriteString("\n  🟢 " + ct.Category + ": Rp " + dispatch.FormatRupiah(ct.Total))
	}

	sb.WriteString("\n\n💸 Pengeluaran: Rp " + dispatch.FormatRupiah(s.TotalExpenses))
	for _, ct := range s.ByExpenseCategory {
		sb.WriteString("\n  🔴 " + ct.Category + ": Rp " + dispatch.FormatRupiah(ct.Total))
	}

	sb.WriteString("\n\n📊 Selisih: Rp " + dispatch.FormatRupiah(s.Net))

	return sb.String()
}
