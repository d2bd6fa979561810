package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"

	"toolkit/pkg/registry"
	"toolkit/pkg/scripts"
)

// checkToolsDir verifies the tools directory exists and is a directory, or
// can be created on first use.
func checkToolsDir(dir string) CheckResult {
	result := CheckResult{Check: CheckToolsDir}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		result.Passed = true
		result.Message = fmt.Sprintf("%s does not exist yet and will be created on first use", dir)
	case err != nil:
		result.Message = fmt.Sprintf("cannot access %s", dir)
		result.Error = err
	case !info.IsDir():
		result.Message = fmt.Sprintf("%s is not a directory", dir)
		result.Error = fmt.Errorf("not a directory: %s", dir)
	default:
		result.Passed = true
		result.Message = fmt.Sprintf("%s is available", dir)
	}
	return result
}

// checkShell verifies /bin/sh can run the placeholder scripts.
func checkShell(ctx context.Context) CheckResult {
	result := CheckResult{Check: CheckShell}

	if runtime.GOOS == "windows" {
		result.Message = "placeholder scripts need a POSIX shell"
		result.Error = fmt.Errorf("unsupported platform %s", runtime.GOOS)
		return result
	}
	if err := exec.CommandContext(ctx, "/bin/sh", "-c", "exit 0").Run(); err != nil {
		result.Message = "/bin/sh is not usable"
		result.Error = err
		return result
	}

	result.Passed = true
	result.Message = "/bin/sh is available"
	return result
}

// checkScript reports whether the executable behind tool is installed. A
// missing script passes: the runner materializes a placeholder for it.
func checkScript(toolsDir string, tool registry.ToolSpec) CheckResult {
	result := CheckResult{Check: scriptCheck(tool.Script)}
	path := scripts.Resolve(toolsDir, tool.Script)

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		result.Passed = true
		result.Message = fmt.Sprintf("%s not installed, a placeholder will be created on first run", tool.Name)
	case err != nil:
		result.Message = fmt.Sprintf("cannot access %s", path)
		result.Error = err
	case info.IsDir():
		result.Message = fmt.Sprintf("%s is a directory", path)
		result.Error = fmt.Errorf("not an executable: %s", path)
	case runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0:
		result.Message = fmt.Sprintf("%s is not executable", path)
		result.Error = fmt.Errorf("missing execute permission: %s", path)
	default:
		result.Passed = true
		result.Message = fmt.Sprintf("%s installed at %s", tool.Name, path)
	}
	return result
}
