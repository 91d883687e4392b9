package exec

import "fmt"

// Language describes how a supported identifier maps onto the Piston
// execution engine: engine name, engine version, source file extension,
// the boilerplate the snippet is wrapped in, and whether the engine
// compiles.
type Language struct {
	Engine    string
	Version   string
	Extension string
	Template  func(code string) string
	Compile   bool
}

func identity(code string) string { return code }

// languages is configuration data, not protocol logic; new entries can
// be added without touching the proxy.
var languages = map[string]Language{
	"python3": {
		Engine:    "python",
		Version:   "3.10",
		Extension: "py",
		Template:  identity,
	},
	"java": {
		Engine:    "java",
		Version:   "15.0.2",
		Extension: "java",
		Template: func(code string) string {
			return fmt.Sprintf(`
public class Main {
    public static void main(String[] args) {
        %s
    }
}`, code)
		},
		Compile: true,
	},
	"cpp": {
		Engine:    "c++",
		Version:   "10.2.0",
		Extension: "cpp",
		Template: func(code string) string {
			return fmt.Sprintf(`
#include <iostream>
using namespace std;

int main() {
    %s
    return 0;
}`, code)
		},
		Compile: true,
	},
	"nodejs": {
		Engine:    "node",
		Version:   "15.8.0",
		Extension: "js",
		Template:  identity,
	},
	"c": {
		Engine:    "c",
		Version:   "10.2.0",
		Extension: "c",
		Template: func(code string) string {
			return fmt.Sprintf(`
#include <stdio.h>

int main() {
    %s
    return 0;
}`, code)
		},
		Compile: true,
	},
	"ruby": {
		Engine:    "ruby",
		Version:   "3.0.0",
		Extension: "rb",
		Template:  identity,
	},
	"go": {
		Engine:    "go",
		Version:   "1.16.2",
		Extension: "go",
		Template: func(code string) string {
			return fmt.Sprintf(`
package main

import "fmt"

func main() {
    %s
}`, code)
		},
		Compile: true,
	},
	"swift": {
		Engine:    "swift",
		Version:   "5.3.3",
		Extension: "swift",
		Template:  identity,
		Compile:   true,
	},
	"rust": {
		Engine:    "rust",
		Version:   "1.50.0",
		Extension: "rs",
		Template: func(code string) string {
			return fmt.Sprintf(`
fn main() {
    %s
}`, code)
		},
		Compile: true,
	},
	"csharp": {
		Engine:    "c#",
		Version:   "5.0.201",
		Extension: "cs",
		Template: func(code string) string {
			return fmt.Sprintf(`
using System;

class Program {
    static void Main() {
        %s
    }
}`, code)
		},
		Compile: true,
	},
}

// LookupLanguage returns the configuration for a language identifier.
func LookupLanguage(id string) (Language, bool) {
	lang, ok := languages[id]
	return lang, ok
}
