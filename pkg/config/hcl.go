// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// hclConfig is the HCL schema. Pointers mark attributes that were left out.
type hclConfig struct {
	Source      *string  `hcl:"source,optional"`
	Destination *string  `hcl:"destination,optional"`
	Recursive   *bool    `hcl:"recursive,optional"`
	Resize      *bool    `hcl:"resize,optional"`
	Quality     *int     `hcl:"quality,optional"`
	Size        *string  `hcl:"size,optional"`
	Exclude     []string `hcl:"exclude,optional"`
	Report      *string  `hcl:"report,optional"`
}

// 📝 Parse decodes HCL on top of cfg
func (p *HCLParser) Parse(ctx context.Context, data []byte, cfg *Config) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "options.hcl")
	if diags.HasErrors() {
		return errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"path_separator": cty.StringVal(string(filepath.Separator)),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if hclCfg.Source != nil {
		cfg.Source = *hclCfg.Source
	}
	if hclCfg.Destination != nil {
		cfg.Destination = *hclCfg.Destination
	}
	if hclCfg.Recursive != nil {
		cfg.Recursive = *hclCfg.Recursive
	}
	if hclCfg.Resize != nil {
		cfg.Resize = *hclCfg.Resize
	}
	if hclCfg.Quality != nil {
		cfg.Quality = *hclCfg.Quality
	}
	if hclCfg.Size != nil {
		cfg.Size = SizeClass(*hclCfg.Size)
	}
	if hclCfg.Exclude != nil {
		cfg.Exclude = hclCfg.Exclude
	}
	if hclCfg.Report != nil {
		cfg.Report = *hclCfg.Report
	}

	return nil
}
