package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szborok/BRK-CNC-ClampingPlateManager/pkg/platemanager/models"
)

func desc(folder, file string, kind models.FileKind) models.ModelFileDescriptor {
	return models.ModelFileDescriptor{FolderName: folder, FileName: file, RelativePath: folder + "/" + file, Kind: kind}
}

func TestMatchExactNameOnly(t *testing.T) {
	records := []models.PlateRecord{{PlateNumber: "12"}, {PlateNumber: "3"}}
	descriptors := []models.ModelFileDescriptor{
		desc("12A", "m.step", models.KindModel),
		desc("12A", "m.png", models.KindImage),
		desc("3", "b.step", models.KindModel),
		desc("3", "a.step", models.KindModel),
		desc("3", "p.png", models.KindImage),
	}

	res := Match(records, descriptors)
	require.Len(t, res.Plates, 2)

	unlinked := res.Plates[0]
	assert.Nil(t, unlinked.LinkedModel)
	assert.Contains(t, unlinked.ModelStatus, "plate 12")

	linked := res.Plates[1]
	require.NotNil(t, linked.LinkedModel)
	assert.Equal(t, "3/a.step", linked.LinkedModel.RelativePath)
	assert.Len(t, linked.ModelFiles, 2)
	require.NotNil(t, linked.PreviewImage)
	assert.Equal(t, "3/p.png", linked.PreviewImage.RelativePath)
	assert.Empty(t, linked.ModelStatus)

	assert.Equal(t, 1, res.Linked)
	assert.Equal(t, []string{"12A"}, res.UnusedFolders)
}

func TestMatchIsCaseAndSpaceSensitive(t *testing.T) {
	records := []models.PlateRecord{{PlateNumber: "a1"}, {PlateNumber: "B 2"}}
	descriptors := []models.ModelFileDescriptor{
		desc("A1", "m.step", models.KindModel),
		desc("B2", "m.step", models.KindModel),
	}
	res := Match(records, descriptors)
	assert.Zero(t, res.Linked)
}

func TestMatchIsIdempotent(t *testing.T) {
	records := []models.PlateRecord{{PlateNumber: "1"}, {PlateNumber: "2"}, {PlateNumber: "4"}}
	descriptors := []models.ModelFileDescriptor{
		desc("2", "z.stl", models.KindModel),
		desc("1", "y.step", models.KindModel),
		desc("1", "x.step", models.KindModel),
		desc("1", "i.png", models.KindImage),
	}
	first := Match(records, descriptors)
	second := Match(records, descriptors)
	assert.Equal(t, first, second)
	assert.Equal(t, "1/x.step", first.Plates[0].LinkedModel.RelativePath)
}

func TestMatchFirstPlateWinsOnConflict(t *testing.T) {
	records := []models.PlateRecord{
		{PlateNumber: "5", SourceRows: []int{3}},
		{PlateNumber: "5", SourceRows: []int{9}},
	}
	descriptors := []models.ModelFileDescriptor{desc("5", "m.step", models.KindModel)}

	res := Match(records, descriptors)
	require.NotNil(t, res.Plates[0].LinkedModel)
	assert.Nil(t, res.Plates[1].LinkedModel)
	assert.Contains(t, res.Plates[1].ModelStatus, "already linked")
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, Conflict{FolderName: "5", WinnerRow: 3, RejectedRow: 9}, res.Conflicts[0])
	assert.Contains(t, res.Plates[1].ModelStatus, "row 3")
}

func TestMatchFolderWithoutModel(t *testing.T) {
	res := Match(
		[]models.PlateRecord{{PlateNumber: "8"}},
		[]models.ModelFileDescriptor{desc("8", "p.png", models.KindImage)},
	)
	assert.Nil(t, res.Plates[0].LinkedModel)
	assert.Contains(t, res.Plates[0].ModelStatus, "no model file")
	require.NotNil(t, res.Plates[0].PreviewImage)
	assert.Empty(t, res.UnusedFolders)
}
