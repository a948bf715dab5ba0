package checkout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `DATE,ITEM_SERIAL,ITEM NAME,ISSUED_TO,QUANTITY,UNIT_OF_MEASURE,ITEM_CATEGORY,WEEK,REFERENCE,DEPARTMENT_CAT,BATCH NO.,STORE,RECEIVED BY
2025-03-10,1001,Mozzarella, Line 1 ,12.5,KG,DAIRY,W11,REQ-114,Pizza,B-22,Main Store,J. Otieno
2025-03-11,1001,Mozzarella,Prep,4,KG,DAIRY,W11,REQ-117,Salads,B-22,Main Store,A. Njeri
not-a-date,1001,Mozzarella,Prep,4,KG,DAIRY,W11,REQ-118,Salads,B-22,Main Store,A. Njeri
2025-03-12,1001,Mozzarella,Prep,abc,KG,DAIRY,W11,REQ-119,Salads,B-22,Main Store,A. Njeri
2023-05-01,1001,Mozzarella,Prep,9,KG,DAIRY,W18,REQ-021,Salads,B-07,Main Store,A. Njeri
2025-03-13,2001,"Flour, Bread",Bakery Line,1250,KG,DRY GOODS,W11,REQ-120,Bakery,B-23,Main Store,K. Mwangi
`

func TestImporter_ParseCleansRows(t *testing.T) {
	imp := &Importer{MinYear: 2024}

	records, report, err := imp.Parse(strings.NewReader(sampleExport))
	require.NoError(t, err)

	assert.Equal(t, 6, report.TotalRows)
	assert.Equal(t, 3, report.Parsed)
	assert.Equal(t, 2, report.SkippedInvalid)
	assert.Equal(t, 1, report.SkippedOld)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), first.IssuedAt)
	assert.Equal(t, "Mozzarella", first.ItemName)
	assert.Equal(t, "Line 1", first.IssuedTo, "fields are trimmed")
	assert.Equal(t, 12.5, first.Quantity)
	assert.Equal(t, "Pizza", first.Department)
	assert.Equal(t, "REQ-114", first.Reference)

	// Quoted name with embedded comma survives.
	assert.Equal(t, "Flour, Bread", records[2].ItemName)
	assert.Equal(t, 1250.0, records[2].Quantity)
}

func TestImporter_NoYearFilterKeepsHistory(t *testing.T) {
	imp := &Importer{}

	records, report, err := imp.Parse(strings.NewReader(sampleExport))
	require.NoError(t, err)
	assert.Equal(t, 4, report.Parsed)
	assert.Equal(t, 0, report.SkippedOld)
	assert.Len(t, records, 4)
}

func TestImporter_MissingRequiredColumn(t *testing.T) {
	imp := &Importer{}

	_, _, err := imp.Parse(strings.NewReader("DATE,ITEM NAME,QUANTITY\n2025-01-01,Flour,5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEPARTMENT_CAT")
}

func TestImporter_AlternateDateLayouts(t *testing.T) {
	csv := "DATE,ITEM NAME,QUANTITY,DEPARTMENT_CAT\n" +
		"03/15/2025,Flour,5,Bakery\n" +
		"2025-03-16 08:30:00,Flour,2,Bakery\n"

	imp := &Importer{}
	records, report, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Parsed)
	assert.Equal(t, time.March, records[0].IssuedAt.Month())
	assert.Equal(t, 15, records[0].IssuedAt.Day())
	assert.Equal(t, 16, records[1].IssuedAt.Day())
}

func TestImporter_ThousandsSeparatorInQuantity(t *testing.T) {
	csv := "DATE,ITEM NAME,QUANTITY,DEPARTMENT_CAT\n" +
		"2025-03-15,Rice,\"1,250.5\",Kitchen\n"

	imp := &Importer{}
	records, _, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1250.5, records[0].Quantity)
}

func TestImporter_NegativeQuantityDropped(t *testing.T) {
	csv := "DATE,ITEM NAME,QUANTITY,DEPARTMENT_CAT\n" +
		"2025-03-15,Rice,-5,Kitchen\n" +
		"2025-03-15,Rice,0,Kitchen\n"

	imp := &Importer{}
	records, report, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 2, report.SkippedInvalid)
}
