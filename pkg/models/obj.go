package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/meshkit/pkg/math3d"
)

const maxOBJLine = 1 << 20

// OBJLoader parses Wavefront OBJ text into a Model.
//
// Only o, v, vt, vn and f lines are interpreted; everything else (comments,
// groups, materials, smoothing) is skipped. Faces must be triangles.
type OBJLoader struct {
	// SharedPools keeps positions, normals and UVs across o lines so files
	// whose face indices count from the start of the file load correctly.
	// When false every object starts with empty pools and its faces index
	// only the attributes declared since the last o line.
	SharedPools bool

	// CalculateNormals fills flat face normals for meshes whose source
	// carries no vn references.
	CalculateNormals bool
}

// NewOBJLoader creates an OBJ loader with default options.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{}
}

// ParseOBJ parses OBJ source text with default options.
func ParseOBJ(text string) (*Model, error) {
	return NewOBJLoader().Decode(strings.NewReader(text))
}

// LoadOBJ loads an OBJ file with default options.
func LoadOBJ(path string) (*Model, error) {
	return NewOBJLoader().Load(path)
}

// Load reads and parses the OBJ file at path.
func (l *OBJLoader) Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	model, err := l.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	model.Name = filepath.Base(path)
	return model, nil
}

// Decode parses OBJ text from r. Any failure aborts the whole parse and no
// partial model is returned.
func (l *OBJLoader) Decode(r io.Reader) (*Model, error) {
	p := &objParser{loader: l}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)

	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := p.flush(); err != nil {
		return nil, &ParseError{Line: p.line, Keyword: "eof", Err: err}
	}

	return &Model{Meshes: p.meshes}, nil
}

// objParser is the state of one Decode call.
type objParser struct {
	loader  *OBJLoader
	builder MeshBuilder
	meshes  []*Mesh
	line    int
}

func (p *objParser) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	var err error
	switch fields[0] {
	case "o":
		err = p.flush()
		p.builder.Name = strings.Join(fields[1:], " ")
	case "v":
		err = p.parseVertex(fields[1:])
	case "vt":
		err = p.parseUV(fields[1:])
	case "vn":
		err = p.parseNormal(fields[1:])
	case "f":
		err = p.parseFace(fields[1:])
	default:
		return nil
	}

	if err != nil {
		return &ParseError{Line: p.line, Keyword: fields[0], Err: err}
	}
	return nil
}

// pending reports whether the current builder holds an object to emit.
// With shared pools the pools outlive objects, so only faces count.
func (p *objParser) pending() bool {
	if p.loader.SharedPools {
		return p.builder.HasFaces()
	}
	return !p.builder.IsEmpty()
}

// flush turns the current builder into a Mesh and starts a new object.
func (p *objParser) flush() error {
	if !p.pending() {
		return nil
	}

	mesh, err := p.builder.Build()
	if err != nil {
		return err
	}
	if p.loader.CalculateNormals && !mesh.HasNormals {
		mesh.CalculateNormals()
	}

	p.meshes = append(p.meshes, mesh)
	p.builder.Reset(p.loader.SharedPools)
	return nil
}

// parseVertex handles "v x y z [w]". W defaults to 1.
func (p *objParser) parseVertex(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("v needs 3 or 4 values, got %d: %w", len(args), ErrMissingComponent)
	}

	n := min(len(args), 4)
	vals, err := parseFloats(args[:n])
	if err != nil {
		return err
	}

	v := math3d.V4(vals[0], vals[1], vals[2], 1)
	if n == 4 {
		v.W = vals[3]
	}
	p.builder.Vertices = append(p.builder.Vertices, v)
	return nil
}

// parseUV handles "vt u v [w]". Only u and v are kept.
func (p *objParser) parseUV(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("vt needs 2 values, got %d: %w", len(args), ErrMissingComponent)
	}

	vals, err := parseFloats(args[:2])
	if err != nil {
		return err
	}
	p.builder.UVs = append(p.builder.UVs, math3d.V2(vals[0], vals[1]))
	return nil
}

// parseNormal handles "vn x y z". W is fixed at 1.
func (p *objParser) parseNormal(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("vn needs 3 values, got %d: %w", len(args), ErrMissingComponent)
	}

	vals, err := parseFloats(args[:3])
	if err != nil {
		return err
	}
	p.builder.Normals = append(p.builder.Normals, math3d.V4(vals[0], vals[1], vals[2], 1))
	return nil
}

// parseFace handles "f a b c" where each corner is v, v/vt, v//vn or v/vt/vn.
func (p *objParser) parseFace(corners []string) error {
	if len(corners) != 3 {
		return fmt.Errorf("face has %d corners: %w", len(corners), ErrUnsupportedFace)
	}

	for _, corner := range corners {
		if err := p.parseCorner(corner); err != nil {
			return fmt.Errorf("corner %q: %w", corner, err)
		}
	}
	return nil
}

func (p *objParser) parseCorner(corner string) error {
	parts := strings.Split(corner, "/")
	b := &p.builder

	v, err := parseIndex(parts[0], len(b.Vertices))
	if err != nil {
		return err
	}
	b.VertexIndices = append(b.VertexIndices, v)

	if len(parts) >= 2 && parts[1] != "" {
		vt, err := parseIndex(parts[1], len(b.UVs))
		if err != nil {
			return err
		}
		b.UVIndices = append(b.UVIndices, vt)
	}

	if len(parts) >= 3 {
		vn, err := parseIndex(parts[2], len(b.Normals))
		if err != nil {
			return err
		}
		b.NormalIndices = append(b.NormalIndices, vn)
	}
	return nil
}

// parseIndex converts a 1-based OBJ index into a 0-based one and checks it
// against the number of attributes defined so far.
func parseIndex(tok string, defined int) (uint32, error) {
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: index %q", ErrMalformedNumber, tok)
	}
	if n > uint64(defined) {
		return 0, fmt.Errorf("index %d with %d defined: %w", n, defined, ErrIndexOutOfRange)
	}
	return uint32(n - 1), nil
}

func parseFloats(toks []string) ([]float32, error) {
	vals := make([]float32, len(toks))
	for i, tok := range toks {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedNumber, tok)
		}
		vals[i] = float32(f)
	}
	return vals, nil
}
