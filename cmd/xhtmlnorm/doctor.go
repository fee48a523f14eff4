package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	xhtmlnorm "github.com/alnah/go-xhtmlnorm"
)

// runDoctor checks the external dependencies and reports their status.
// A missing xmllint is an error (normalization cannot run at all); a
// missing browser is a warning (only cover rasterization needs it).
func runDoctor(deps *Dependencies) error {
	var failed error

	if path, err := exec.LookPath("xmllint"); err != nil {
		fmt.Fprintln(deps.Stdout, "xmllint: NOT FOUND (install libxml2)")
		failed = xhtmlnorm.ErrEngineMissing
	} else {
		fmt.Fprintf(deps.Stdout, "xmllint: %s", path)
		if out, verr := exec.Command(path, "--version").CombinedOutput(); verr == nil {
			if line, _, ok := strings.Cut(string(out), "\n"); ok {
				fmt.Fprintf(deps.Stdout, " (%s)", strings.TrimSpace(line))
			}
		}
		fmt.Fprintln(deps.Stdout)
	}

	chromePath := os.Getenv("ROD_BROWSER_BIN")
	if chromePath == "" {
		// Use rod's launcher to locate Chrome
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			chromePath = ""
		}
	}
	if chromePath == "" {
		fmt.Fprintln(deps.Stdout, "chrome: not found (cover rasterization unavailable; rod will download Chromium on first use)")
	} else {
		fmt.Fprintf(deps.Stdout, "chrome: %s\n", chromePath)
	}

	return failed
}
