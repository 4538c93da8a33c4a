package pubchem

import (
	"strconv"
	"strings"

	"github.com/vytor/pharmaflash/internal/models"
)

// Fill copies compound metadata into the empty fields of item and returns
// the values it set keyed by column name. Non-empty fields are never
// overwritten.
func Fill(item *models.StudyItem, c *Compound) map[string]string {
	if item == nil || c == nil {
		return nil
	}
	set := make(map[string]string)
	fill := func(dst *string, v, name string) {
		if strings.TrimSpace(*dst) == "" && strings.TrimSpace(v) != "" {
			*dst = v
			set[name] = v
		}
	}
	fill(&item.Formula, c.Formula, "formula")
	fill(&item.Smiles, c.Smiles, "smiles")
	fill(&item.MolecularWeight, c.MolecularWeight, "molecular_weight")
	if c.CID > 0 {
		fill(&item.PubChemCID, strconv.FormatInt(c.CID, 10), "pubchem_cid")
	}
	fill(&item.ImageURL, c.ImageURL, "image_url")
	return set
}
