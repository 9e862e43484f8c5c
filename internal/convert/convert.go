// Package convert runs the COLLADA to JSON mesh conversion pipeline.
package convert

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/dae2json/internal/logger"
	"github.com/Faultbox/dae2json/pkg/collada"
	"github.com/Faultbox/dae2json/pkg/mesh"
	"github.com/Faultbox/dae2json/pkg/meshcbor"
	"github.com/Faultbox/dae2json/pkg/meshjson"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// ErrUnknownFormat is returned for an output format other than FormatJSON
// or FormatCBOR.
var ErrUnknownFormat = errors.New("unknown output format")

// Stage identifies the pipeline step that failed.
type Stage int

const (
	StageInput   Stage = iota // opening the input file
	StageParse                // document structure
	StageNumeric              // number tokens
	StageIndex                // face indices
	StageOutput               // writing the output file
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageParse:
		return "parse"
	case StageNumeric:
		return "numeric"
	case StageIndex:
		return "index"
	case StageOutput:
		return "output"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Error is returned by Run for every failure.
type Error struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options configures a conversion.
type Options struct {
	GeometryID string // empty selects the first geometry
	Name       string // overrides the mesh name
	Indent     string // JSON indent, empty for single-line output
	Format     string // FormatJSON or FormatCBOR, empty means FormatJSON
}

// Result summarizes a successful conversion.
type Result struct {
	Name      string
	Triangles int
	Vertices  int // float count of the vertex buffer
	Normals   int // float count of the normal buffer
	Indices   int
}

// Run converts the COLLADA document at input into a JSON or CBOR mesh at
// output. Nothing is written to output unless every step succeeds.
func Run(input, output string, opts Options) (*Result, error) {
	write, err := writer(opts)
	if err != nil {
		return nil, &Error{Stage: StageOutput, Path: output, Err: err}
	}

	logger.Info("INPUT:", zap.String("path", input))
	logger.Info("OUTPUT:", zap.String("path", output))

	compact, err := Load(input, opts)
	if err != nil {
		return nil, err
	}

	if err := write(output, compact); err != nil {
		return nil, &Error{Stage: StageOutput, Path: output, Err: err}
	}

	res := &Result{
		Name:      compact.Name,
		Triangles: len(compact.Indices) / 3,
		Vertices:  len(compact.Vertices),
		Normals:   len(compact.Normals),
		Indices:   len(compact.Indices),
	}
	logger.Info("vertices", zap.Int("count", res.Vertices))
	logger.Info("normals", zap.Int("count", res.Normals))
	logger.Info("indices", zap.Int("count", res.Indices))

	return res, nil
}

// Load reads and deduplicates the mesh at input without writing anything.
func Load(input string, opts Options) (*mesh.CompactMesh, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, &Error{Stage: StageInput, Path: input, Err: err}
	}
	defer f.Close()

	doc, err := collada.Parse(f)
	if err != nil {
		return nil, &Error{Stage: StageParse, Path: input, Err: err}
	}

	raw, err := collada.Extract(doc, collada.ExtractOptions{
		GeometryID: opts.GeometryID,
		Name:       opts.Name,
	})
	if err != nil {
		return nil, &Error{Stage: extractStage(err), Path: input, Err: err}
	}
	warnTriangleCount(doc, opts.GeometryID, raw)

	logger.Debug("extracted mesh",
		zap.String("name", raw.Name),
		zap.Int("positions", raw.PositionCount()),
		zap.Int("normals", raw.NormalCount()),
		zap.Int("triangles", raw.TriangleCount()),
	)

	compact, err := mesh.DeduplicateWith(raw, traceFace)
	if err != nil {
		return nil, &Error{Stage: StageIndex, Path: input, Err: err}
	}
	return compact, nil
}

// writer returns the file serializer selected by opts.Format.
func writer(opts Options) (func(string, *mesh.CompactMesh) error, error) {
	switch opts.Format {
	case "", FormatJSON:
		return func(path string, m *mesh.CompactMesh) error {
			return meshjson.WriteFile(path, m, meshjson.Options{Indent: opts.Indent})
		}, nil
	case FormatCBOR:
		return meshcbor.WriteFile, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

func extractStage(err error) Stage {
	if errors.Is(err, collada.ErrInvalidNumber) {
		return StageNumeric
	}
	return StageParse
}

// traceFace logs one line per face vertex at debug level.
func traceFace(face int, fv mesh.FaceVertex, index uint32, added bool) {
	if ce := logger.Log.Check(zap.DebugLevel, "face"); ce != nil {
		ce.Write(
			zap.Int("token", face*2),
			zap.Uint32("position", fv.Position),
			zap.Uint32("normal", fv.Normal),
			zap.Uint32("index", index),
			zap.Bool("new", added),
		)
	}
}

// warnTriangleCount reports a triangles count attribute that disagrees with
// the index list.
func warnTriangleCount(doc *collada.Document, geometryID string, raw *mesh.RawMesh) {
	geom, err := doc.Geometry(geometryID)
	if err != nil || geom.Mesh == nil || geom.Mesh.Triangles == nil {
		return
	}
	declared, err := geom.Mesh.Triangles.DeclaredCount()
	if err != nil || declared < 0 {
		return
	}
	if declared != raw.TriangleCount() {
		logger.Warn("triangle count mismatch",
			zap.Int("declared", declared),
			zap.Int("indexed", raw.TriangleCount()),
			zap.Int("inputs", len(geom.Mesh.Triangles.Inputs)),
		)
	}
}
