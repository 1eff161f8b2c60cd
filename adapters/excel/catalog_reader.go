package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"careerate/domain/core"
	"careerate/domain/recommend"
	"careerate/internal"

	"github.com/xuri/excelize/v2"
)

// CatalogReader imports AI tool catalog entries from an Excel workbook.
// The first sheet must carry a header row followed by one tool per row:
// name, category, description, capabilities, use_cases, pricing_model,
// difficulty_level, integration_complexity, user_rating. Capability and
// use case cells hold comma-separated lists.
type CatalogReader struct {
	filePath string
}

// NewCatalogReader creates a new catalog reader
func NewCatalogReader(filePath string) *CatalogReader {
	return &CatalogReader{filePath: filePath}
}

// ReadCatalog reads all tool rows from the workbook
func (r *CatalogReader) ReadCatalog() ([]recommend.AITool, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("catalog file not found: %s", r.filePath)
	}
	if ext := strings.ToLower(filepath.Ext(r.filePath)); ext != ".xlsx" {
		return nil, fmt.Errorf("unsupported catalog file type: %s", ext)
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("catalog must have a header row and at least one tool row")
	}

	columns := headerIndex(rows[0])
	var tools []recommend.AITool
	for i, row := range rows[1:] {
		tool, err := r.parseRow(columns, row)
		if err != nil {
			// Skip malformed rows rather than aborting the whole import
			internal.Warnf("catalog: skipping row %d: %v", i+2, err)
			continue
		}
		tools = append(tools, tool)
	}

	internal.Infof("catalog: imported %d tools from %s", len(tools), r.filePath)
	return tools, nil
}

func (r *CatalogReader) parseRow(columns map[string]int, row []string) (recommend.AITool, error) {
	name := cell(columns, row, "name")
	if name == "" {
		return recommend.AITool{}, fmt.Errorf("missing tool name")
	}

	complexity := 2
	if raw := cell(columns, row, "integration_complexity"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return recommend.AITool{}, fmt.Errorf("bad integration_complexity %q: %w", raw, err)
		}
		if v < 1 {
			v = 1
		}
		if v > 5 {
			v = 5
		}
		complexity = v
	}

	rating := 0.0
	if raw := cell(columns, row, "user_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return recommend.AITool{}, fmt.Errorf("bad user_rating %q: %w", raw, err)
		}
		rating = v
	}

	pricing := cell(columns, row, "pricing_model")
	if pricing == "" {
		pricing = "freemium"
	}

	return recommend.AITool{
		ID:                    core.ToolID(core.NewID()),
		Name:                  name,
		Category:              cell(columns, row, "category"),
		Description:           cell(columns, row, "description"),
		Capabilities:          splitList(cell(columns, row, "capabilities")),
		UseCases:              splitList(cell(columns, row, "use_cases")),
		PricingModel:          pricing,
		DifficultyLevel:       recommend.ParseDifficultyLevel(cell(columns, row, "difficulty_level")),
		IntegrationComplexity: complexity,
		UserRating:            rating,
	}, nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func cell(columns map[string]int, row []string, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
