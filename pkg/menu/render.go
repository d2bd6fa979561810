package menu

import (
	"fmt"
	"strings"
	"time"

	"toolkit/pkg/exec"
	"toolkit/pkg/registry"
	"toolkit/pkg/version"
)

const banner = `
╔═══════════════════════════════════════════════════════════════════════════════╗
║                                                                               ║
║                   🔧  P E R S O N A L   A U T O M A T I O N  🔧               ║
║                             T O O L K I T                                     ║
║                                                                               ║
║                        Your Scripts, Simplified                               ║
║                                                                               ║
╚═══════════════════════════════════════════════════════════════════════════════╝`

func rule(ch string, n int) string {
	return strings.Repeat(ch, n)
}

func (c *Controller) showMenu() {
	c.screen.Clear(c.console.Out())
	c.console.Println(banner)
	c.console.Printf("%80s\n", "version "+version.String())

	c.console.Println("\n" + rule("=", 80))
	c.console.Println(" 🛠️  AVAILABLE AUTOMATION TOOLS")
	c.console.Println(rule("=", 80))
	for _, tool := range c.registry.List() {
		c.console.Printf(" [%d] %s\n", tool.ID, tool.Name)
		c.console.Printf("     └─ %s\n", tool.Description)
		c.console.Println()
	}
	c.console.Println(" [0] Exit")
	c.console.Println(rule("=", 80))
}

func (c *Controller) showSelected(tool registry.ToolSpec) {
	c.console.Printf("\n%s\n", rule("=", 80))
	c.console.Printf(" 🎯 Selected: %s\n", tool.Name)
	c.console.Printf(" 📋 %s\n", tool.Description)
	c.console.Println(rule("=", 80))
}

func (c *Controller) showSummary(inputs *registry.InputMap) {
	c.console.Println("\n📊 Configuration Summary:")
	c.console.Println(rule("-", 40))
	inputs.Each(func(name string, v any) {
		c.console.Printf("   %s: %v\n", name, v)
	})
	c.console.Println(rule("-", 40))
}

func (c *Controller) showResult(tool registry.ToolSpec, result exec.RunResult) {
	switch result.Outcome {
	case exec.Success:
		c.console.Printf("✅ Success! Completed in %.2f seconds\n", result.Duration.Seconds())
		if result.Stdout != "" {
			c.console.Printf("📄 Output:\n%s", ensureNewline(result.Stdout))
		}
	case exec.NonZeroExit:
		c.console.Printf("❌ Error (Exit code: %d)\n", result.ExitCode)
		if result.Stdout != "" {
			c.console.Printf("📄 Output:\n%s", ensureNewline(result.Stdout))
		}
		if result.Stderr != "" {
			c.console.Printf("🔍 Error details:\n%s", ensureNewline(result.Stderr))
		}
	case exec.TimedOut:
		c.console.Printf("⏰ Script execution timed out (%s)\n", formatTimeout(c.timeout))
	case exec.LaunchFailed:
		if result.PlaceholderCreated {
			c.console.Printf("⚠️  Script not found: %s\n", result.ScriptPath)
			c.console.Printf("📝 Created placeholder: %s\n", result.ScriptPath)
			c.console.Printf("   Edit this file to add the %s logic, then run it again!\n", tool.Name)
			return
		}
		c.console.Printf("💥 Execution failed: %s\n", result.Reason)
	}
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func formatTimeout(d time.Duration) string {
	switch {
	case d >= time.Minute && d%time.Minute == 0:
		minutes := int(d / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	case d >= time.Second && d%time.Second == 0:
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	default:
		return d.String()
	}
}
