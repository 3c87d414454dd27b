// Package compile implements command line actions: it finds UIDL component
// descriptions, compiles them and writes generated files.
package compile

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"uidlc/archive"
	"uidlc/config"
	"uidlc/generate"
	"uidlc/state"
	"uidlc/uidl"
)

func generatorOptions(cfg *config.Config) generate.Options {
	return generate.Options{
		ScopedClassNames: cfg.Generator.ScopedClassNames,
		Indent:           cfg.Generator.Indent,
	}
}

// prepareProjectStyleSet loads project style set named on command line or in
// configuration, command line wins.
func prepareProjectStyleSet(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) error {
	path := cmd.String("project-styles")
	if path == "" {
		path = env.Cfg.Generator.ProjectStyleSetPath
	}
	if path == "" {
		log.Debug("No project style set, project referenced styles will not resolve")
		return nil
	}

	set, err := LoadProjectStyleSet(path, log)
	if err != nil {
		return err
	}
	env.ProjectStyleSet = set
	if data, err := os.ReadFile(path); err == nil {
		env.Rpt.StoreData("project/"+filepath.Base(path), data)
	}
	return nil
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")
	if err := prepareProjectStyleSet(cmd, env, log); err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := process(ctx, src, dst, log); err != nil {
		return err
	}

	if cmd.Bool("project-stylesheet") || env.Cfg.Generator.ProjectStylesheet {
		return writeProjectStylesheet(dst, env, log)
	}
	return nil
}

func writeProjectStylesheet(dst string, env *state.LocalEnv, log *zap.Logger) error {
	f, ok := generate.GenerateProjectStylesheet(env.ProjectStyleSet)
	if !ok {
		log.Warn("Project stylesheet requested but there is no project style set to render")
		return nil
	}
	paths, err := writeFiles(dst, []generate.GeneratedFile{f}, env.Overwrite, log)
	if err != nil {
		return fmt.Errorf("unable to write project stylesheet: %w", err)
	}
	env.Rpt.Store("project/"+f.Name, paths[0])
	log.Info("Project stylesheet written", zap.String("file", paths[0]))
	return nil
}

// process handles the core logic independently of CLI framework. Source may
// be a single component file, directory with component files or component
// bundle (zip archive), optionally followed by path inside the bundle.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)
	gen := generate.New(log, generatorOptions(env.Cfg))

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in bundle
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, gen, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			return nil
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		if isComponentFile(head) {
			if len(tail) != 0 {
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			data, err := os.ReadFile(head)
			if err != nil {
				return err
			}
			return processComponent(ctx, gen, data, filepath.Base(head), dst, log)
		}

		bundle, err := archive.IsArchive(head)
		if err != nil {
			return fmt.Errorf("unable to check bundle type: %w", err)
		}
		if bundle {
			pathIn := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processBundle(ctx, gen, head, filepath.ToSlash(pathIn), dst, log); err != nil {
				return fmt.Errorf("unable to process bundle: %w", err)
			}
			return nil
		}
		return fmt.Errorf("input was not recognized as UIDL component or bundle (%s)", head)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// processDir walks directory tree finding component files and processes them.
// Failure of a single component is logged and does not stop the walk.
func processDir(ctx context.Context, gen *generate.Generator, dir, dst string, log *zap.Logger) (err error) {
	count, failed := 0, 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
		if err == nil && failed > 0 {
			err = fmt.Errorf("%d of %d components failed", failed, count)
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !isComponentFile(path) {
			log.Debug("Skipping file, not recognized as component", zap.String("file", path))
			return nil
		}

		count++

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		data, err := os.ReadFile(path)
		if err == nil {
			err = processComponent(ctx, gen, data, src, dst, log)
		}
		if err != nil {
			failed++
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processBundle processes component files inside zip archive under
// "pathIn". Directory structure of the bundle is kept under "dst".
func processBundle(ctx context.Context, gen *generate.Generator, path, pathIn, dst string, log *zap.Logger) (err error) {
	count, failed := 0, 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("bundle", path))
		}
		if err == nil && failed > 0 {
			err = fmt.Errorf("%d of %d components failed", failed, count)
		}
	}()

	return archive.Walk(path, pathIn, func(bundle, name string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !isComponentFile(name) {
			log.Debug("Skipping file, not recognized as component", zap.String("bundle", bundle), zap.String("file", f.Name))
			return nil
		}

		count++

		data, err := archive.ReadEntry(f)
		if err == nil {
			err = processComponent(ctx, gen, data, filepath.FromSlash(name), dst, log)
		}
		if err != nil {
			failed++
			log.Error("Unable to process file in bundle", zap.String("bundle", bundle), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
}

// processComponent compiles single component description. "src" is path
// relative to the processed source (directory or bundle), including file
// name, used to mirror directory structure under "dst".
func processComponent(ctx context.Context, gen *generate.Generator, data []byte, src, dst string, log *zap.Logger) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	var outDir string

	log.Info("Compilation starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		} else if rerr == nil {
			log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outDir))
		}
	}(time.Now())

	comp, err := uidl.DecodeComponent(data)
	if err != nil {
		return fmt.Errorf("unable to decode component (%s): %w", src, err)
	}

	reportDir := "components/" + filepath.ToSlash(src)
	env.Rpt.StoreData(reportDir+"/uidl.txt", []byte(comp.String()))

	res, err := gen.GenerateComponent(comp, generate.ComponentOptions{ProjectStyleSet: env.ProjectStyleSet})
	if err != nil {
		return fmt.Errorf("unable to compile component %q: %w", comp.Name, err)
	}
	env.Rpt.StoreData(reportDir+"/resolution.txt", []byte(resolutionDump(comp.Name, res)))

	outDir = determineOutputDir(src, dst)
	paths, err := writeFiles(outDir, res.Files, env.Overwrite, log)
	if err != nil {
		return err
	}
	for i, f := range res.Files {
		env.Rpt.Store(reportDir+"/"+f.Name, paths[i])
	}
	return nil
}
