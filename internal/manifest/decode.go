package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeAttr evaluates an attribute expression and populates the Go value
// behind target. A nil expression (the attribute was omitted) leaves the
// target at its zero value. The value is converted to the type implied by
// the target before decoding, so `singleton = "true"` still fails cleanly.
func decodeAttr(expr hcl.Expression, name string, target any) error {
	if expr == nil {
		return nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("failed to evaluate attribute %q: %w", name, diags)
	}

	impliedType, err := gocty.ImpliedType(target)
	if err != nil {
		return fmt.Errorf("cannot imply type for attribute %q: %w", name, err)
	}

	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("attribute %q: cannot convert %s to %s: %w",
			name, val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	return gocty.FromCtyValue(converted, target)
}
