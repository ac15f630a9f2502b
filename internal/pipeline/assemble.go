package pipeline

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/uncharted-waters/tradedb/internal/model"
	"github.com/uncharted-waters/tradedb/internal/region"
)

// CreatedLayout matches the millisecond UTC timestamps the viewer was built
// against.
const CreatedLayout = "2006-01-02T15:04:05.000Z"

// datasetNamespace scopes the name-based UUIDs given to generated documents.
var datasetNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/uncharted-waters/tradedb"))

// Header is the descriptive part of the metadata block.
type Header struct {
	Title       string
	Description string
	Version     string
}

// AssembleInput is everything the assembler joins.
type AssembleInput struct {
	Header  Header
	Sources model.Sources
	Created time.Time
	Mapper  *region.Mapper
	Cities  []model.City
	Pivot   *Pivot
}

// Assemble builds the output document and runs the completeness check:
// every city needs a culture, every city culture and every price key must be
// a region code. Violations are added to report; they never fail assembly.
func Assemble(in AssembleInput, report *model.Report) (*model.TradeDatabase, error) {
	db := &model.TradeDatabase{
		Metadata: model.Metadata{
			Title:       in.Header.Title,
			Description: in.Header.Description,
			Version:     in.Header.Version,
			Sources:     in.Sources,
		},
		Regions:    in.Mapper.Entries(),
		Categories: []string{},
		Cities:     make([]model.City, 0, len(in.Cities)),
		Items:      []model.Item{},
	}
	if in.Pivot != nil {
		db.Categories = append(db.Categories, in.Pivot.Categories...)
		db.Items = append(db.Items, in.Pivot.Items...)
	}

	for _, c := range in.Cities {
		if c.Specialties == nil {
			c.Specialties = []string{}
		}
		switch {
		case c.Culture == "":
			report.Add(model.AnomalyUnresolvedCulture, c.Name, c.Line, "no override, inference, or source value")
		case !in.Mapper.IsCode(c.Culture):
			report.Add(model.AnomalyUnmappedRegion, c.Name, c.Line, "culture "+c.Culture+" is not in the region table")
		}
		db.Cities = append(db.Cities, c)
	}

	for i, it := range db.Items {
		if it.Prices == nil {
			db.Items[i].Prices = map[string]int{}
		}
		for _, k := range sortedKeys(it.Prices) {
			if !in.Mapper.IsCode(k) {
				report.Add(model.AnomalyUnknownPriceKey, it.Name, 0, "price key "+k+" is not a region code")
			}
		}
	}

	id, err := DocumentID(db)
	if err != nil {
		return nil, err
	}
	db.Metadata.ID = id
	db.Metadata.Created = in.Created.UTC().Format(CreatedLayout)

	return db, nil
}

// DocumentID derives a stable UUID from the document content, ignoring the
// id and creation time, so identical inputs always get the same id.
func DocumentID(db *model.TradeDatabase) (string, error) {
	c := *db
	c.Metadata.ID = ""
	c.Metadata.Created = ""
	data, err := json.Marshal(&c)
	if err != nil {
		return "", eris.Wrap(err, "pipeline: marshal for document id")
	}
	return uuid.NewSHA1(datasetNamespace, data).String(), nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
