package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestModuleByName(t *testing.T) {
	mask, ok := ModuleByName("Verify")
	if !ok || mask != ModVerify.Mask() {
		t.Errorf("ModuleByName(Verify) = %x, %v", mask, ok)
	}
	if mask, ok := ModuleByName("all"); !ok || mask != ModuleMaskAll {
		t.Errorf("ModuleByName(all) = %x, %v", mask, ok)
	}
	if _, ok := ModuleByName("ppu"); ok {
		t.Error("ModuleByName(ppu) should fail")
	}
}

func TestDebugMask(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer DisableDebugModules(ModuleMaskAll)

	ModCPU.WithField("op", "ADD A, B").Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output with module disabled: %q", buf.String())
	}

	EnableDebugModules(ModCPU.Mask())
	ModCPU.WithField("op", "ADD A, B").Debug("shown")
	ModVerify.Debug("still hidden")

	out := buf.String()
	if !strings.Contains(out, "shown") || !strings.Contains(out, "_mod=cpu") {
		t.Errorf("missing cpu debug line: %q", out)
	}
	if strings.Contains(out, "still hidden") {
		t.Errorf("verify debug line leaked: %q", out)
	}
}

func TestWarnAlwaysPrints(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	ModCLI.Warnf("golden file %s missing", "x.json")
	if !strings.Contains(buf.String(), "golden file x.json missing") {
		t.Errorf("warn line missing: %q", buf.String())
	}
}
