// Package schemas embeds the JSON Schemas of the canonical documents.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// CommonID is the $id the document schemas use to reference common.schema.json.
const CommonID = "https://resume-contract.local/schemas/common.schema.json"
