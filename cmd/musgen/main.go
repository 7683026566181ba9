package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	"github.com/poiesic/topicmatch/core"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/topicmatch/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.ID]())

	// Element types come before the records that hold them.
	records := []reflect.Type{
		reflect.TypeFor[core.Dependency](),
		reflect.TypeFor[core.Token](),
		reflect.TypeFor[core.Sentence](),
		reflect.TypeFor[core.Span](),
		reflect.TypeFor[core.DocumentRecord](),
		reflect.TypeFor[core.LemmaVector](),
	}
	for _, t := range records {
		if err := g.AddStruct(t); err != nil {
			panic(err)
		}
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
