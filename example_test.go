package dnfa_test

import (
	"fmt"

	"github.com/coregx/dnfa"
)

// ExampleCompile demonstrates basic compilation and a leftmost-longest search.
func ExampleCompile() {
	re, err := dnfa.Compile(`ab+`)
	if err != nil {
		panic(err)
	}

	m, ok := re.Find([]byte("xabbby"))
	fmt.Println(m, ok)
	// Output: [1,5)#0 true
}

// ExampleWithSearchMode demonstrates stopping at the first final state.
func ExampleWithSearchMode() {
	re := dnfa.MustCompile(`ab+`, dnfa.WithSearchMode(dnfa.First))
	m, _ := re.FindString("xabbby")
	fmt.Println(m)
	// Output: [1,3)#0
}

// ExampleRegex_All demonstrates iterating over non-overlapping matches.
func ExampleRegex_All() {
	re := dnfa.MustCompile(`[0-9]+`)
	hay := []byte("a1b22c333")
	for m := range re.All(hay) {
		fmt.Println(string(hay[m.Start:m.End]))
	}
	// Output:
	// 1
	// 22
	// 333
}

// ExampleCompileDictionary demonstrates overlapping matches of a word list.
func ExampleCompileDictionary() {
	re, err := dnfa.CompileDictionary([]string{"he", "she", "hers"})
	if err != nil {
		panic(err)
	}
	for m := range re.Overlapping([]byte("ushers")) {
		fmt.Println(m)
	}
	// Output:
	// [1,4)#1
	// [2,4)#0
	// [2,6)#2
}

// ExampleConfig demonstrates lazy determinization for a pattern whose full
// DFA exceeds the state limit.
func ExampleConfig() {
	const pattern = `(a|b)*a(a|b){12}`

	_, err := dnfa.Compile(pattern, dnfa.WithStateLimit(1_000))
	fmt.Println(err != nil)

	config := dnfa.DefaultConfig()
	config.Determinization = dnfa.Lazy
	config.StateLimit = 1_000
	re, err := dnfa.Compile(pattern, dnfa.WithConfig(config))
	if err != nil {
		panic(err)
	}
	fmt.Println(re.MatchString("bbbabbbbbbbbbbbb"))
	// Output:
	// true
	// true
}
