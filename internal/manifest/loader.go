package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/provreg/internal/compid"
	"github.com/vk/provreg/internal/ctxlog"
	"github.com/vk/provreg/internal/provider"
)

// Loader parses HCL provider manifests into records.
type Loader struct{}

// NewLoader creates a new manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every manifest reachable from the given paths (files or
// directories, walked for .hcl files) and returns the declared records in
// file-then-declaration order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*provider.Record, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := findManifestFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	var records []*provider.Record

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, block := range root.Providers {
			rec, err := translateProvider(block)
			if err != nil {
				return nil, fmt.Errorf("manifest %s, provider %q: %w", file, block.Name, err)
			}
			records = append(records, rec)
		}
	}

	logger.Debug("Manifest loading complete.", "providers", len(records))
	return records, nil
}

// translateProvider evaluates one provider block into a record.
func translateProvider(block *providerBlock) (*provider.Record, error) {
	var componentRaw string
	if err := decodeAttr(block.Component, "component", &componentRaw); err != nil {
		return nil, err
	}
	component, err := compid.Parse(componentRaw)
	if err != nil {
		return nil, err
	}

	var authority string
	if err := decodeAttr(block.Authority, "authority", &authority); err != nil {
		return nil, err
	}

	var singleton bool
	if err := decodeAttr(block.Singleton, "singleton", &singleton); err != nil {
		return nil, err
	}

	var ownerUID int
	if err := decodeAttr(block.OwnerUID, "owner_uid", &ownerUID); err != nil {
		return nil, err
	}

	return provider.New(authority, component, singleton, ownerUID), nil
}

// findManifestFiles walks all given paths and returns a flat, de-duplicated
// list of .hcl files. A named path that does not exist is an error; the
// caller asked for it explicitly.
func findManifestFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing manifest path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return allFiles, nil
}
