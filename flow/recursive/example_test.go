package recursive_test

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/lguimbarda/treeflow/flow/recursive"
)

type node struct {
	name     string
	children []node
}

func ExampleMap() {
	tree := []node{
		{name: "etc", children: []node{{name: "hosts"}, {name: "ssh", children: []node{{name: "sshd_config"}}}}},
		{name: "var", children: []node{{name: "log"}}},
	}

	for n := range recursive.Map(slices.Values(tree), func(n node) iter.Seq[node] {
		return slices.Values(n.children)
	}) {
		fmt.Println(n.name)
	}
	// Output:
	// etc
	// var
	// hosts
	// ssh
	// log
	// sshd_config
}

func ExampleMapErr() {
	errDenied := errors.New("permission denied")
	listing := map[string][]string{
		"/":     {"/home", "/root"},
		"/home": {"/home/ada"},
	}

	list := func(dir string) (iter.Seq2[string, error], error) {
		if strings.HasPrefix(dir, "/root") {
			return nil, fmt.Errorf("list %s: %w", dir, errDenied)
		}
		return func(yield func(string, error) bool) {
			for _, child := range listing[dir] {
				if !yield(child, nil) {
					return
				}
			}
		}, nil
	}

	root := func(yield func(string, error) bool) { yield("/", nil) }
	for dir, err := range recursive.MapErr(root, list) {
		if err != nil {
			fmt.Println("error:", err)
			break
		}
		fmt.Println(dir)
	}
	// Output:
	// /
	// /home
	// error: list /root: permission denied
}

func ExampleWithOrder() {
	tree := []node{
		{name: "a", children: []node{{name: "a1"}, {name: "a2"}}},
		{name: "b", children: []node{{name: "b1"}}},
	}

	expand := func(n node) iter.Seq[node] { return slices.Values(n.children) }
	var names []string
	for n := range recursive.Map(slices.Values(tree), expand, recursive.WithOrder(recursive.DepthFirst)) {
		names = append(names, n.name)
	}
	fmt.Println(strings.Join(names, " "))
	// Output: a a1 a2 b b1
}
