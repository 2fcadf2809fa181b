package matrix

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"go.uber.org/zap"

	"github.com/wippyai/castcheck"
	"github.com/wippyai/castcheck/errors"
	"github.com/wippyai/castcheck/types"
)

// Layout locates the external toolchain the RUN lines invoke.
type Layout struct {
	// Root is the repository root as seen from the test file.
	Root string
	// Steps bounds the traced execution.
	Steps int
}

// DefaultLayout matches test files living in llvm/test/CodeGen/I8085.
var DefaultLayout = Layout{
	Root:  "%S/../../../../..",
	Steps: 200000,
}

const artifactSource = `// REQUIRES: i8085-sim
// RUN: {{.Bin}}/clang -target i8085-unknown-elf -O0 -ffreestanding -fno-builtin -nostdlib -c \
// RUN:   {{.Root}}/sysroot/crt/crt0.S -o %t.crt0.o
// RUN: {{.Bin}}/clang -target i8085-unknown-elf -O0 -ffreestanding -fno-builtin -nostdlib -emit-llvm -c \
// RUN:   %s -o %t.bc
// RUN: {{.Bin}}/llc -mtriple=i8085-unknown-elf -filetype=obj %t.bc -o %t.o
// RUN: {{.Bin}}/ld.lld -m i8085elf \
// RUN:   -T {{.Root}}/sysroot/ldscripts/i8085-32kram-32krom.ld -Map %t.map \
// RUN:   -o %t.elf %t.crt0.o %t.o
// RUN: llvm-objcopy -O binary %t.elf %t.bin
// RUN: {{.Root}}/i8085-trace/build/i8085-trace -S -q -n {{.Steps}} -d {{.Addr}}:{{.Size}} %t.bin 2>&1 | FileCheck %s --check-prefix=ABI

#include <stdint.h>

static volatile {{.Src.CType}} in_val = {{.Src.Literal}};

__attribute__((noinline)) static {{.Dst.CType}} conv({{.Src.CType}} x) {
  return ({{.Dst.CType}})x;
}

int main(void) {
  volatile uint8_t *p = (volatile uint8_t *){{.Addr}};
  volatile {{.Dst.CType}} v = conv(in_val);
{{- if .Wide}}
  volatile uint8_t *vp = (volatile uint8_t *)&v;
{{- range .Offsets}}
  p[{{.}}] = vp[{{.}}];
{{- end}}
{{- else}}
  {{.Store}} u = ({{.Store}})v;
{{- range .Offsets}}
  p[{{.}}] = (uint8_t)(u >> {{shift .}});
{{- end}}
{{- end}}
  return 0;
}

// ABI: Memory dump {{.Addr}} - {{.Last}} ({{len .Offsets}} bytes):
// ABI: {{.Label}}: {{.Hex}}
// ABI: "halt":"{{.Halt}}"
`

var artifactTmpl = template.Must(template.New("artifact").
	Funcs(template.FuncMap{"shift": func(i int) int { return 8 * i }}).
	Parse(artifactSource))

type artifactData struct {
	Src, Dst    types.Descriptor
	Root, Bin   string
	Addr, Last  string
	Size, Label string
	Store, Hex  string
	Halt        string
	Offsets     []int
	Steps       int
	Wide        bool
}

func (c Case) data(l Layout) artifactData {
	n := c.Dest.Bytes()
	offsets := make([]int, n)
	for i := range offsets {
		offsets[i] = i
	}
	return artifactData{
		Src:     c.Source,
		Dst:     c.Dest,
		Root:    l.Root,
		Bin:     l.Root + "/tooling/build/build-clang-8085/bin",
		Steps:   l.Steps,
		Addr:    fmt.Sprintf("0x%04X", castcheck.BaseAddr),
		Last:    fmt.Sprintf("0x%04X", castcheck.BaseAddr+uint32(n)-1),
		Size:    fmt.Sprintf("0x%02X", n),
		Label:   fmt.Sprintf("%04X", castcheck.BaseAddr),
		Store:   fmt.Sprintf("uint%d_t", c.Dest.Bits),
		Hex:     c.HexBytes(),
		Halt:    castcheck.HaltReason,
		Offsets: offsets,
		Wide:    c.Dest.Bits > 32,
	}
}

// Render writes the C test program for c.
func (c Case) Render(w io.Writer, l Layout) error {
	if err := artifactTmpl.Execute(w, c.data(l)); err != nil {
		return errors.Wrap(errors.PhaseGenerate, errors.KindIO, err, "render "+c.Name())
	}
	return nil
}

// RenderExpected writes c's expected bytes in expected-bytes file format.
func (c Case) RenderExpected(w io.Writer) error {
	_, err := fmt.Fprintf(w, "# %s: (%s)%s %s -> %s\n%s\n",
		c.Name(), c.Source.CType, c.Value, c.Source.Name, c.Dest.Name, c.HexBytes())
	if err != nil {
		return errors.Wrap(errors.PhaseGenerate, errors.KindIO, err, "render expected "+c.Name())
	}
	return nil
}

// WriteAll writes <name>.c and <name>.expected for every case into dir and
// returns the paths written.
func WriteAll(dir string, cases []Case, l Layout) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.IO(errors.PhaseGenerate, "create "+dir, err)
	}
	var written []string
	for _, c := range cases {
		src := filepath.Join(dir, c.Name()+".c")
		if err := writeFile(src, func(w io.Writer) error { return c.Render(w, l) }); err != nil {
			return written, err
		}
		exp := filepath.Join(dir, c.Name()+".expected")
		if err := writeFile(exp, c.RenderExpected); err != nil {
			return written, err
		}
		written = append(written, src, exp)
		Logger().Debug("wrote case",
			zap.String("case", c.Name()),
			zap.String("bytes", c.HexBytes()))
	}
	return written, nil
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.IO(errors.PhaseGenerate, "create "+path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IO(errors.PhaseGenerate, "close "+path, cerr)
		}
	}()
	return fn(f)
}
