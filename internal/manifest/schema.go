package manifest

import "github.com/hashicorp/hcl/v2"

// providerBlock represents a `provider` block from a manifest file. The
// attributes are kept as unevaluated expressions; translation evaluates
// them one by one so a bad value is reported with its attribute name.
type providerBlock struct {
	Name      string         `hcl:"name,label"`
	Authority hcl.Expression `hcl:"authority,optional"`
	Component hcl.Expression `hcl:"component"`
	Singleton hcl.Expression `hcl:"singleton,optional"`
	OwnerUID  hcl.Expression `hcl:"owner_uid,optional"`
}

// fileRoot is the top-level structure decoded from any manifest file.
type fileRoot struct {
	Providers []*providerBlock `hcl:"provider,block"`
	Remain    hcl.Body         `hcl:",remain"`
}
