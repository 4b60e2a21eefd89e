package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alan-mat/deepresearch/internal/client"
	"github.com/alan-mat/deepresearch/internal/storage"
	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"
)

type args struct {
	Endpoint     string `arg:"--endpoint,-e" default:"http://localhost:8000" help:"research API base url"`
	ResponsesDir string `arg:"--responses-dir" default:"responses" help:"directory summaries are written to"`
	DownloadsDir string `arg:"--downloads-dir" default:"downloads" help:"directory ctrl+s saves summaries to"`
}

func (args) Description() string {
	return "Terminal client for the deepresearch API."
}

func main() {
	var args args
	arg.MustParse(&args)

	responses, err := storage.NewFileStore(args.ResponsesDir)
	if err != nil {
		log.Fatal(err)
	}
	downloads, err := storage.NewFileStore(args.DownloadsDir)
	if err != nil {
		log.Fatal(err)
	}

	m := initialModel(client.New(args.Endpoint), responses, downloads)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
