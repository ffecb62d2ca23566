package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlomp/internal/content"
	"mlomp/internal/models"
)

func TestDatasetsPassValidation(t *testing.T) {
	for _, n := range News() {
		_, err := content.ValidateNews(models.NewsInput{Title: n.Title, Content: n.Content, Category: n.Category})
		assert.NoError(t, err, n.Title)
	}
	for _, p := range Projects() {
		_, err := content.ValidateProject(models.ProjectInput{Title: p.Title, Description: p.Description, Status: p.Status, StartDate: p.StartDate, EndDate: *p.EndDate})
		assert.NoError(t, err, p.Title)
	}
	for _, s := range Services() {
		_, err := content.ValidateService(models.ServiceInput{Title: s.Title, Description: s.Description, Category: s.Category})
		assert.NoError(t, err, s.Title)
	}
	for _, p := range Procedures() {
		_, err := content.ValidateProcedure(models.ProcedureInput{
			Title: p.Title, Description: p.Description, Category: p.Category,
			RequiredDocs: p.Docs(), ProcessingTime: p.ProcessingTime,
		})
		assert.NoError(t, err, p.Title)
	}
	for _, i := range Investments() {
		_, err := content.ValidateInvestment(models.InvestmentInput{
			Title: i.Title, Category: i.Category, Description: i.Description,
			Amount: i.Amount, Status: i.Status, StartYear: *i.StartYear, EndYear: *i.EndYear,
		})
		assert.NoError(t, err, i.Title)
	}
}

func TestCitizenSpaceDelays(t *testing.T) {
	procs := Procedures()
	require.Len(t, procs, 4)
	assert.Equal(t, "3 jours", content.DelayLabel(procs[0].ProcessingTime))
	assert.Equal(t, "1 jour", content.DelayLabel(procs[2].ProcessingTime))
	assert.Equal(t, []string{"Pièce d'identité", "Formulaire de demande"}, procs[0].Docs())
}

func TestAccessorsReturnCopies(t *testing.T) {
	a := News()
	a[0].Title = "modifié"
	assert.NotEqual(t, "modifié", News()[0].Title)
}

func TestFind(t *testing.T) {
	idOf := func(n *models.News) models.ID { return n.ID }

	got, ok := Find(News(), models.IDFromInt(2), idOf)
	require.True(t, ok)
	assert.Equal(t, "Lancement du programme de reforestation communautaire", got.Title)

	_, ok = Find(News(), models.ID("99"), idOf)
	assert.False(t, ok)
}
