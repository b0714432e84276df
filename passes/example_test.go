package passes_test

import (
	"errors"
	"fmt"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/passes"
)

func ExampleBuild() {
	cfg := rendergraph.DefaultConfig()

	list, err := passes.Build(nil, cfg)
	if err != nil {
		panic(err)
	}
	for _, p := range list {
		fmt.Println(p.Name())
	}

	_, err = passes.Build([]string{"geometry", "bloom"}, cfg)
	fmt.Println(errors.Is(err, passes.ErrUnknownPass))
	// Output:
	// shadow
	// background
	// geometry
	// lighting
	// blur
	// composite
	// overlay
	// true
}
