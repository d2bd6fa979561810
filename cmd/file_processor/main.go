// Command file_processor is the File Batch Processor tool.
package main

import (
	"context"

	"toolkit/pkg/batch"
	"toolkit/pkg/toolio"
)

func main() {
	toolio.Main(func(ctx context.Context, req batch.Request, streams toolio.IO) error {
		_, err := batch.NewProcessor(streams).Process(ctx, req)
		return err
	})
}
