// import_materials carga el catálogo de materiales de una empresa desde un CSV exportado de Excel
// (separador ';', codificación Windows-1252 o UTF-8).
//
// Uso: go run ./cmd/import_materials <company_id> [ruta/materiales.csv]
// Por defecto busca materiales.csv en el directorio actual.
// Columnas: codigo;nombre;unidad;tarifa (la primera fila es encabezado). Tarifa admite coma decimal.
// Los códigos que ya existen en la empresa se omiten.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
	"github.com/jhoicas/Reciclaje-api/internal/application/usecase"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Reciclaje-api/pkg/config"
	"github.com/jhoicas/Reciclaje-api/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: import_materials <company_id> [materiales.csv]")
		os.Exit(2)
	}
	companyID := os.Args[1]
	csvPath := "materiales.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "import_materials"})

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := parseCatalog(f)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := usecase.NewMaterialUseCase(postgres.NewMaterialRepository(pool))
	var created, skipped int
	for _, in := range rows {
		_, err := uc.Create(ctx, companyID, in)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Warn().Str("code", in.Code).Msg("material ya existe, se omite")
		case err != nil:
			log.Fatal().Err(err).Str("code", in.Code).Msg("crear material")
		default:
			created++
		}
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo importado")
}

// parseCatalog lee el CSV completo. Si el contenido no es UTF-8 válido se asume Windows-1252,
// que es lo que produce Excel en equipos con configuración regional en español.
func parseCatalog(r io.Reader) ([]dto.CreateMaterialRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var src io.Reader = strings.NewReader(string(raw))
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(bufio.NewReader(src))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	out := make([]dto.CreateMaterialRequest, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 3 columnas, hay %d", line, len(rec))
		}
		in := dto.CreateMaterialRequest{
			Code:        strings.TrimSpace(rec[0]),
			Name:        strings.TrimSpace(rec[1]),
			UnitMeasure: strings.ToLower(strings.TrimSpace(rec[2])),
		}
		if in.Code == "" {
			continue
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			rate, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
			if err != nil {
				return nil, fmt.Errorf("línea %d: tarifa inválida %q", line, rec[3])
			}
			in.DefaultRate = rate
		}
		out = append(out, in)
	}
	return out, nil
}
