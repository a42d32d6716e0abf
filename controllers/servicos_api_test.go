package controllers_test

import (
	"net/http"
	"testing"

	"cronograma/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func criaServico(t *testing.T, r *gin.Engine, token string, contratoID uuid.UUID, medicoes []gin.H) uuid.UUID {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/servicos", token, gin.H{
		"item":        "2.1",
		"servico":     "Alvenaria",
		"contrato_id": contratoID,
		"medicoes":    medicoes,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("criar serviço: status %d (corpo: %s)", w.Code, w.Body.String())
	}
	var resp struct {
		Servico struct {
			ID uuid.UUID `json:"id"`
		} `json:"servico"`
	}
	decodeBody(t, w, &resp)
	return resp.Servico.ID
}

func TestServicoValorTotal(t *testing.T) {
	r, database, ts := setupAPI(t)
	_, token := criaUsuario(t, database, ts, "dona", models.ROLE_USUARIO, true)
	contratoID := criaContrato(t, r, token, "Contrato de serviços")

	servicoID := criaServico(t, r, token, contratoID, []gin.H{
		{"ordem": 0, "mes": "jan/26", "previsto": 1000.0, "realizado": 900.0},
		{"ordem": 1, "mes": "fev/26", "previsto": 2500.0},
	})

	var servico models.Servico
	if err := database.Where("id = ?", servicoID).First(&servico).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if servico.ValorTotal != 3500.0 {
		t.Errorf("valor_total = %.2f, esperado 3500.00 (soma do previsto)", servico.ValorTotal)
	}
}

func TestMedicaoUpsertPorOrdem(t *testing.T) {
	r, database, ts := setupAPI(t)
	_, token := criaUsuario(t, database, ts, "dona", models.ROLE_USUARIO, true)
	contratoID := criaContrato(t, r, token, "Contrato de medições")

	servicoID := criaServico(t, r, token, contratoID, []gin.H{
		{"ordem": 0, "mes": "jan/26", "previsto": 1000.0},
	})
	base := "/api/servicos/" + servicoID.String() + "/medicoes/"

	// Atualiza a medição existente endereçando pela ordem.
	w := doJSON(t, r, http.MethodPut, base+"0", token, gin.H{
		"ordem": 0, "mes": "jan/26", "previsto": 1200.0, "realizado": 1100.0,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("atualizar medição: status %d (corpo: %s)", w.Code, w.Body.String())
	}

	// Ordens esparsas valem: a ordem 5 ainda não existe e é criada.
	w = doJSON(t, r, http.MethodPut, base+"5", token, gin.H{
		"ordem": 5, "mes": "jun/26", "previsto": 800.0,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("criar medição esparsa: status %d", w.Code)
	}

	var medicoes []models.Medicao
	if err := database.Where("servico_id = ?", servicoID).Order("ordem asc").Find(&medicoes).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(medicoes) != 2 {
		t.Fatalf("medições = %d, esperado 2", len(medicoes))
	}
	if medicoes[0].Previsto != 1200.0 || medicoes[0].Realizado != 1100.0 {
		t.Errorf("medição 0 = (%.2f, %.2f), esperado (1200.00, 1100.00)",
			medicoes[0].Previsto, medicoes[0].Realizado)
	}
	if medicoes[1].Ordem != 5 {
		t.Errorf("segunda medição na ordem %d, esperado 5", medicoes[1].Ordem)
	}

	// O valor total do serviço acompanha as medições.
	var servico models.Servico
	if err := database.Where("id = ?", servicoID).First(&servico).Error; err != nil {
		t.Fatalf("find serviço: %v", err)
	}
	if servico.ValorTotal != 2000.0 {
		t.Errorf("valor_total = %.2f, esperado 2000.00", servico.ValorTotal)
	}
}

func TestMedicaoUsaOrdemDaURL(t *testing.T) {
	r, database, ts := setupAPI(t)
	_, token := criaUsuario(t, database, ts, "dona", models.ROLE_USUARIO, true)
	contratoID := criaContrato(t, r, token, "Contrato")

	servicoID := criaServico(t, r, token, contratoID, nil)
	url := "/api/servicos/" + servicoID.String() + "/medicoes/7"

	// O corpo não traz ordem (o JSON assume 0); vale a da URL, e
	// repetir o PUT atualiza a mesma linha ao invés de duplicar.
	if w := doJSON(t, r, http.MethodPut, url, token, gin.H{"mes": "ago/26", "previsto": 300.0}); w.Code != http.StatusNoContent {
		t.Fatalf("primeiro PUT: status %d (corpo: %s)", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPut, url, token, gin.H{"mes": "ago/26", "previsto": 450.0}); w.Code != http.StatusNoContent {
		t.Fatalf("segundo PUT: status %d", w.Code)
	}

	var medicoes []models.Medicao
	if err := database.Where("servico_id = ?", servicoID).Find(&medicoes).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(medicoes) != 1 {
		t.Fatalf("medições = %d, esperado 1 (upsert pela ordem da URL)", len(medicoes))
	}
	if medicoes[0].Ordem != 7 || medicoes[0].Previsto != 450.0 {
		t.Errorf("medição = (ordem %d, previsto %.2f), esperado (7, 450.00)",
			medicoes[0].Ordem, medicoes[0].Previsto)
	}

	// Uma ordem divergente no corpo também é ignorada.
	if w := doJSON(t, r, http.MethodPut, url, token, gin.H{"ordem": 2, "previsto": 500.0}); w.Code != http.StatusNoContent {
		t.Fatalf("terceiro PUT: status %d", w.Code)
	}
	if err := database.Where("servico_id = ?", servicoID).Find(&medicoes).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(medicoes) != 1 || medicoes[0].Ordem != 7 {
		t.Errorf("após corpo divergente: %d medições, ordem %d; esperado 1 na ordem 7",
			len(medicoes), medicoes[0].Ordem)
	}
}

func TestUpdateServicoSubstituiMedicoes(t *testing.T) {
	r, database, ts := setupAPI(t)
	_, token := criaUsuario(t, database, ts, "dona", models.ROLE_USUARIO, true)
	contratoID := criaContrato(t, r, token, "Contrato")

	servicoID := criaServico(t, r, token, contratoID, []gin.H{
		{"ordem": 0, "mes": "jan/26", "previsto": 100.0},
		{"ordem": 1, "mes": "fev/26", "previsto": 200.0},
		{"ordem": 2, "mes": "mar/26", "previsto": 300.0},
	})

	w := doJSON(t, r, http.MethodPut, "/api/servicos/"+servicoID.String(), token, gin.H{
		"item":        "2.1",
		"servico":     "Alvenaria revisada",
		"contrato_id": contratoID,
		"medicoes": []gin.H{
			{"ordem": 0, "mes": "jan/26", "previsto": 150.0},
		},
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("atualizar serviço: status %d (corpo: %s)", w.Code, w.Body.String())
	}

	if n := contaRegistros(t, database, &models.Medicao{}, "servico_id = ?", servicoID); n != 1 {
		t.Errorf("medições = %d, esperado 1 (conjunto substituído)", n)
	}
	var servico models.Servico
	if err := database.Where("id = ?", servicoID).First(&servico).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if servico.ServicoNome != "Alvenaria revisada" {
		t.Errorf("servico = %q", servico.ServicoNome)
	}
	if servico.ValorTotal != 150.0 {
		t.Errorf("valor_total = %.2f, esperado 150.00", servico.ValorTotal)
	}
}

func TestServicoExigePermissaoDeEdicao(t *testing.T) {
	r, database, ts := setupAPI(t)
	_, tokenDona := criaUsuario(t, database, ts, "dona", models.ROLE_USUARIO, true)
	leitor, tokenLeitor := criaUsuario(t, database, ts, "leitor", models.ROLE_USUARIO, true)

	contratoID := criaContrato(t, r, tokenDona, "Contrato")
	servicoID := criaServico(t, r, tokenDona, contratoID, []gin.H{
		{"ordem": 0, "mes": "jan/26", "previsto": 100.0},
	})

	if w := doJSON(t, r, http.MethodPost, "/api/contratos/"+contratoID.String()+"/compartilhar", tokenDona, gin.H{
		"usuario_id": leitor.ID,
	}); w.Code != http.StatusCreated {
		t.Fatalf("compartilhar: status %d", w.Code)
	}

	// Leitura liberada pelo compartilhamento.
	if w := doJSON(t, r, http.MethodGet, "/api/servicos?contrato_id="+contratoID.String(), tokenLeitor, nil); w.Code != http.StatusOK {
		t.Errorf("listar serviços: status %d, esperado 200", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/servicos/"+servicoID.String(), tokenLeitor, nil); w.Code != http.StatusOK {
		t.Errorf("ler serviço: status %d, esperado 200", w.Code)
	}

	// Escritas continuam barradas.
	if w := doJSON(t, r, http.MethodPost, "/api/servicos", tokenLeitor, gin.H{
		"item": "3.1", "servico": "Pintura", "contrato_id": contratoID,
	}); w.Code != http.StatusForbidden {
		t.Errorf("criar serviço sem edição: status %d, esperado 403", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/api/servicos/"+servicoID.String(), tokenLeitor, nil); w.Code != http.StatusForbidden {
		t.Errorf("deletar serviço sem edição: status %d, esperado 403", w.Code)
	}
	if w := doJSON(t, r, http.MethodPut, "/api/servicos/"+servicoID.String()+"/medicoes/0", tokenLeitor, gin.H{
		"ordem": 0, "previsto": 999.0,
	}); w.Code != http.StatusForbidden {
		t.Errorf("medição sem edição: status %d, esperado 403", w.Code)
	}
}

func TestGetServicosExigeContrato(t *testing.T) {
	r, database, ts := setupAPI(t)
	_, token := criaUsuario(t, database, ts, "dona", models.ROLE_USUARIO, true)

	if w := doJSON(t, r, http.MethodGet, "/api/servicos", token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("sem contrato_id: status %d, esperado 400", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/servicos?contrato_id="+uuid.New().String(), token, nil); w.Code != http.StatusNotFound {
		t.Errorf("contrato inexistente: status %d, esperado 404", w.Code)
	}
}
