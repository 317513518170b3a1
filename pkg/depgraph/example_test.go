package depgraph_test

import (
	"fmt"

	"github.com/matzehuels/depwalk/pkg/depgraph"
)

func ExampleSort() {
	g := depgraph.New()
	g.Set("App", []string{"Http", "Json"})
	g.Set("Http", []string{"Json"})
	g.Set("Json", nil)

	order := depgraph.Sort(g)
	fmt.Println(order.Packages)
	// Output: [Json Http App]
}

func ExampleSort_cycle() {
	g := depgraph.New()
	g.Set("A", []string{"B"})
	g.Set("B", []string{"C"})
	g.Set("C", []string{"B"})

	order := depgraph.Sort(g)
	fmt.Println("order:", order.Packages)
	fmt.Println("excluded:", order.Excluded)
	// Output:
	// order: []
	// excluded: [B C A]
}

func ExampleCycles() {
	g := depgraph.New()
	g.Set("A", []string{"B"})
	g.Set("B", []string{"C"})
	g.Set("C", []string{"B"})

	cycles, _ := depgraph.Cycles(g)
	fmt.Println(cycles)
	// Output: [[B C]]
}
