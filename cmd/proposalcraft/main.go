// Command proposalcraft is a retrieval-backed sales proposal generator.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nishiki-labs/proposalcraft/internal/adapters/driven/ai"
	configfile "github.com/nishiki-labs/proposalcraft/internal/adapters/driven/config/file"
	indexfile "github.com/nishiki-labs/proposalcraft/internal/adapters/driven/index/file"
	"github.com/nishiki-labs/proposalcraft/internal/adapters/driven/llm/template"
	"github.com/nishiki-labs/proposalcraft/internal/adapters/driven/storage/sqlite"
	"github.com/nishiki-labs/proposalcraft/internal/adapters/driving/cli"
	"github.com/nishiki-labs/proposalcraft/internal/chunker"
	"github.com/nishiki-labs/proposalcraft/internal/core/services"
)

func main() {
	var closers []io.Closer

	cli.OnInit(func() error {
		cs, err := wire()
		if err != nil {
			return err
		}
		closers = cs
		return nil
	})

	err := cli.Execute()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close()
	}

	if err != nil {
		os.Exit(1)
	}
}

// wire builds every adapter and service from configuration and hands the
// driving ports to the CLI. Returned closers are released in reverse order
// after the command finishes.
func wire() ([]io.Closer, error) {
	configPath := cli.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = configfile.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := configfile.Load(configPath)
	if err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".proposalcraft", "data")
	}

	var closers []io.Closer

	providers := ai.Init(cfg)
	closers = append(closers, closerFunc(func() error {
		providers.Close()
		return nil
	}))

	index, err := indexfile.Open(filepath.Join(dataDir, "index"), cfg.VectorDimension)
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	closers = append(closers, index)

	docStore, err := sqlite.NewStore(dataDir)
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	closers = append(closers, docStore)

	splitter := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)

	search := services.NewSearchService(providers.EmbeddingService, index, cfg)
	cli.SetServices(cli.Services{
		Ingest:   services.NewIngestService(splitter, providers.EmbeddingService, index, docStore, cfg),
		Search:   search,
		Proposal: services.NewProposalService(search, providers.GenerationService, template.NewRenderer(), cfg),
		Document: services.NewDocumentService(docStore, index),
	})

	return closers, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func closeAll(closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close()
	}
}
