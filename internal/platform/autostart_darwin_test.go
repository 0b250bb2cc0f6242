//go:build darwin

package platform

import (
	"strings"
	"testing"
)

func TestBuildLaunchAgentPlist(t *testing.T) {
	plist := buildLaunchAgentPlist(LoginItem{
		AppName:  "FocusHub",
		ExecPath: "/Applications/FocusHub.app/Contents/MacOS/focushub",
		Args:     []string{"gui", "--store", "/Users/ana/R&D/prefs.json"},
	})

	for _, want := range []string{
		"<string>com.focushub.focushub</string>",
		"\t\t<string>/Applications/FocusHub.app/Contents/MacOS/focushub</string>\n\t\t<string>gui</string>\n\t\t<string>--store</string>\n",
		"<string>/Users/ana/R&amp;D/prefs.json</string>",
		"<key>RunAtLoad</key>\n\t<true/>",
	} {
		if !strings.Contains(plist, want) {
			t.Errorf("plist missing %q:\n%s", want, plist)
		}
	}
}

func TestLaunchAgentLabel(t *testing.T) {
	if got := launchAgentLabel(" Focus Hub "); got != "com.focushub.focus-hub" {
		t.Errorf("launchAgentLabel() = %q", got)
	}
}
