package prompt

import (
	"context"
	"errors"
	"strings"

	"toolkit/pkg/logx"
	"toolkit/pkg/registry"
)

// Collector prompts for each field of a tool and coerces the answers.
type Collector struct {
	console *Console
	logger  *logx.Logger
}

// NewCollector creates a collector on top of console.
func NewCollector(console *Console) *Collector {
	return &Collector{
		console: console,
		logger:  logx.NewLogger("prompt"),
	}
}

// CollectTool prints the configuration header for tool and collects its fields.
func (c *Collector) CollectTool(ctx context.Context, tool registry.ToolSpec) (*registry.InputMap, error) {
	c.console.Printf("\n🔧 Configuring: %s\n", tool.Name)
	c.console.Println(strings.Repeat("-", 60))
	return c.Collect(ctx, tool.Fields)
}

// Collect prompts for every field in order. Integer and float fields are
// re-prompted until they parse; string and boolean fields accept the first
// line. The only errors are ErrInterrupted, io.EOF and read failures.
func (c *Collector) Collect(ctx context.Context, fields []registry.FieldSpec) (*registry.InputMap, error) {
	inputs := registry.NewInputMap()
	for _, field := range fields {
		v, err := c.collectField(ctx, field)
		if err != nil {
			return nil, err
		}
		inputs.Set(field.Name, v)
	}
	return inputs, nil
}

func (c *Collector) collectField(ctx context.Context, field registry.FieldSpec) (any, error) {
	for {
		raw, err := c.console.Ask(ctx, " "+field.Prompt)
		if err != nil {
			return nil, err
		}

		v, err := field.Type.Coerce(raw)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, registry.ErrInvalidValue) {
			return nil, err
		}

		c.logger.Debug("Rejected %q for field %s: %v", raw, field.Name, err)
		c.console.Printf(" ❌ Invalid input. Please enter a valid %s.\n", field.Type)
	}
}
