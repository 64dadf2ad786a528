package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"sportloan.GO/core/registry"
)

func TestRegistry_RegisterAndApply(t *testing.T) {
	out := &bytes.Buffer{}
	Register(&cobra.Command{
		Use:   "report:overdue",
		Short: "Print open borrowals past their due date",
		Run: func(c *cobra.Command, args []string) {
			out.WriteString("0 overdue borrowals")
		},
	})
	Apply()

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"report:overdue"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "0 overdue borrowals" {
		t.Errorf("output = %q, want overdue summary", out.String())
	}

	// The built-in maintenance commands ride along on the same root.
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Use] = true
	}
	for _, want := range []string{"db:migrate", "equipment:import", "cron:start"} {
		if !names[want] {
			t.Errorf("command %q not mounted on root", want)
		}
	}
}

func TestRegistry_LockedRefusesLateRegistration(t *testing.T) {
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
	defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)
	defer func() {
		if recover() == nil {
			t.Error("Register on a locked registry did not panic")
		}
	}()
	Register(&cobra.Command{Use: "too:late"})
}
