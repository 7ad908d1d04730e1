package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	ansiCyan  = "\033[36m"
	ansiGreen = "\033[32m"
	ansiReset = "\033[0m"
)

// Run drives the interactive loop: read a choice, dispatch, repeat until
// the user exits or input runs out.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprintln(out, "\nOptions:")
		fmt.Fprintln(out, "1. Ask a question")
		fmt.Fprintln(out, "2. Re-run PDF embeddings")
		fmt.Fprintln(out, "3. Convert a page image to a data URI")
		fmt.Fprintln(out, "0. Exit")
		fmt.Fprint(out, "Enter your choice: ")

		choice, ok := readLine(scanner)
		if !ok {
			return
		}

		switch choice {
		case "1":
			fmt.Fprint(out, "Enter your question: ")
			question, ok := readLine(scanner)
			if !ok {
				return
			}
			if question != "" {
				a.askQuestion(ctx, out, question)
			}
		case "2":
			fmt.Fprintln(out, "Re-running embeddings...")
			if res := a.Ingestor.Run(ctx, a.cfg.PDFPath); !res.Success {
				fmt.Fprintf(out, "Ingestion failed: %s\n", res.Message)
			} else {
				fmt.Fprintf(out, "Ingested %d chunks (%d failed, %d tokens).\n",
					res.Data.ChunksEmbedded, res.Data.ChunksFailed, res.Data.TokensUsed)
			}
		case "3":
			fmt.Fprint(out, "Enter the image path: ")
			path, ok := readLine(scanner)
			if !ok {
				return
			}
			if path == "" {
				continue
			}
			uri, err := a.Imager.DataURI(path)
			if err != nil {
				fmt.Fprintf(out, "Failed to read image: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Data URI (%d bytes): %s...\n", len(uri), uri[:min(80, len(uri))])
		case "0":
			fmt.Fprintln(out, "Exiting...")
			return
		default:
			fmt.Fprintln(out, "Invalid choice. Try again.")
		}
	}
}

func (a *App) askQuestion(ctx context.Context, out io.Writer, question string) {
	res := a.Query.Run(ctx, question)
	if !res.Success {
		fmt.Fprintf(out, "Query failed: %s\n", res.Message)
		return
	}
	if res.Data.Answer == "" {
		fmt.Fprintln(out, "No relevant chunks found.")
		return
	}

	fmt.Fprintf(out, "\n%s========== FINAL ANSWER ==========%s\n\n", ansiCyan, ansiReset)
	fmt.Fprintf(out, "%s%s%s\n", ansiGreen, res.Data.Answer, ansiReset)
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}
