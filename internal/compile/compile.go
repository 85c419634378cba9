package compile

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/koskimas/json2code/internal/ir"
	"github.com/koskimas/json2code/internal/model"
	"github.com/koskimas/json2code/internal/resolve"
	"github.com/koskimas/json2code/internal/route"
	"github.com/koskimas/json2code/internal/synth"
	"github.com/koskimas/json2code/internal/types"
)

// File compiles one loaded document into a unit. `table` is shared by all
// files of a run and is extended with every record synthesized here.
func File(doc *model.Document, table *types.Table, logger *slog.Logger) (*ir.Unit, error) {
	unit, err := file(doc, table, logger)
	if err != nil {
		return nil, model.WithFile(err, filepath.Base(doc.File))
	}

	return unit, nil
}

func file(doc *model.Document, table *types.Table, logger *slog.Logger) (*ir.Unit, error) {
	order, err := resolve.Order(doc, table)
	if err != nil {
		return nil, err
	}

	logger.Debug("resolved model order", slog.String("file", doc.File), slog.Any("order", order))

	records, err := synth.Records(doc, order, table)
	if err != nil {
		return nil, err
	}

	routes, err := route.CompileAll(doc.Routes())
	if err != nil {
		return nil, err
	}

	for _, r := range routes {
		logger.Debug("compiled route", slog.String("nickname", r.Nickname), slog.String("method", r.Method), slog.String("pattern", r.Pattern()))
	}

	logger.Debug("compiled file",
		slog.String("file", doc.File),
		slog.Int("records", len(records)),
		slog.Int("routes", len(routes)),
	)

	return &ir.Unit{
		File:    doc.File,
		Base:    BaseName(doc.File),
		Records: records,
		Routes:  routes,
	}, nil
}

// BaseName is the file name without directories and the `.json` suffix.
func BaseName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), ".json")
}
