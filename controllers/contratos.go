package controllers

import (
	"net/http"
	"sort"
	"time"

	"cronograma/access"
	dbpkg "cronograma/db"
	"cronograma/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContratoResumo é a linha da listagem: contratos próprios e
// compartilhados comigo saem juntos, com as flags de acesso.
type ContratoResumo struct {
	ID                 uuid.UUID  `json:"id"`
	Nome               string     `json:"nome"`
	Descricao          string     `json:"descricao"`
	NumeroMeses        int        `json:"numero_meses"`
	MesInicial         int        `json:"mes_inicial"`
	AnoInicial         int        `json:"ano_inicial"`
	DataCriacao        *time.Time `json:"data_criacao"`
	UsuarioID          uuid.UUID  `json:"usuario_id"`
	UsuarioNome        string     `json:"usuario_nome"`
	Proprietario       bool       `json:"proprietario"`
	PodeEditar         bool       `json:"pode_editar"`
	PercentualReajuste float64    `json:"percentual_reajuste"`
	MesInicioReajuste  int        `json:"mes_inicio_reajuste"`
}

type ContratoDetalhe struct {
	ContratoResumo
	Servicos   []models.Servico         `json:"servicos"`
	Pagamentos []models.PagamentoMensal `json:"pagamentos_mensais"`
}

type CompartilhamentoResponse struct {
	ID                   uuid.UUID  `json:"id"`
	UsuarioID            uuid.UUID  `json:"usuario_id"`
	UsuarioNome          string     `json:"usuario_nome"`
	UsuarioEmail         string     `json:"usuario_email"`
	PodeEditar           bool       `json:"pode_editar"`
	DataCompartilhamento *time.Time `json:"data_compartilhamento"`
}

type CompartilharRequest struct {
	UsuarioID  uuid.UUID `json:"usuario_id" form:"usuario_id"`
	PodeEditar bool      `json:"pode_editar" form:"pode_editar"`
}

func resumoContrato(contrato models.Contrato, donoNome string, proprietario, podeEditar bool) ContratoResumo {
	return ContratoResumo{
		ID:                 contrato.ID,
		Nome:               contrato.Nome,
		Descricao:          contrato.Descricao,
		NumeroMeses:        contrato.NumeroMeses,
		MesInicial:         contrato.MesInicial,
		AnoInicial:         contrato.AnoInicial,
		DataCriacao:        contrato.DataCriacao,
		UsuarioID:          contrato.UsuarioID,
		UsuarioNome:        donoNome,
		Proprietario:       proprietario,
		PodeEditar:         podeEditar,
		PercentualReajuste: contrato.PercentualReajuste,
		MesInicioReajuste:  contrato.MesInicioReajuste,
	}
}

// GET /api/contratos
func GetContratos(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var proprios []models.Contrato
	if err := db.Where("usuario_id = ?", usuario.ID).Find(&proprios).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	resumos := make([]ContratoResumo, 0, len(proprios))
	for _, contrato := range proprios {
		resumos = append(resumos, resumoContrato(contrato, usuario.Nome, true, true))
	}

	var compartilhamentos []models.ContratoCompartilhado
	if err := db.Where("usuario_id = ?", usuario.ID).Find(&compartilhamentos).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	for _, cc := range compartilhamentos {
		var contrato models.Contrato
		if err := db.Where("id = ?", cc.ContratoID).First(&contrato).Error; err != nil {
			continue
		}
		var dono models.Usuario
		db.Where("id = ?", contrato.UsuarioID).First(&dono)
		resumos = append(resumos, resumoContrato(contrato, dono.Nome, false, cc.PodeEditar))
	}

	sort.Slice(resumos, func(i, j int) bool {
		a, b := resumos[i].DataCriacao, resumos[j].DataCriacao
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})

	RespondSuccess(c, gin.H{"contratos": resumos})
}

// GET /api/contratos/:id
func GetContrato(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	contrato, err := access.Authorize(db, usuario.ID, id, access.View)
	if err != nil {
		RespondAccessError(c, err)
		return
	}
	capability := access.Resolve(db, usuario.ID, id)

	var dono models.Usuario
	db.Where("id = ?", contrato.UsuarioID).First(&dono)

	var servicos []models.Servico
	if err := db.Where("contrato_id = ?", id).Find(&servicos).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	for i := range servicos {
		db.Where("servico_id = ?", servicos[i].ID).Order("ordem asc").Find(&servicos[i].Medicoes)
	}

	var pagamentos []models.PagamentoMensal
	if err := db.Where("contrato_id = ?", id).Order("ordem asc").Find(&pagamentos).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	detalhe := ContratoDetalhe{
		ContratoResumo: resumoContrato(*contrato, dono.Nome,
			capability == access.Own, capability >= access.Edit),
		Servicos:   servicos,
		Pagamentos: pagamentos,
	}
	RespondSuccess(c, gin.H{"contrato": detalhe})
}

// POST /api/contratos
// O usuário logado vira o proprietário, sempre.
func CreateContrato(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var contrato models.Contrato
	if err := c.Bind(&contrato); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := contrato.MissingFields(); missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	contrato.ID = uuid.New()
	contrato.UsuarioID = usuario.ID
	contrato.DataCriacao = &now

	if err := db.Create(&contrato).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contrato": resumoContrato(contrato, usuario.Nome, true, true)})
}

// PUT /api/contratos/:id
func UpdateContrato(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	var body models.Contrato
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()
	contrato, err := access.Authorize(tx, usuario.ID, id, access.Edit)
	if err != nil {
		tx.Rollback()
		RespondAccessError(c, err)
		return
	}

	contrato.Nome = body.Nome
	contrato.Descricao = body.Descricao
	contrato.NumeroMeses = body.NumeroMeses
	contrato.MesInicial = body.MesInicial
	contrato.AnoInicial = body.AnoInicial
	contrato.PercentualReajuste = body.PercentualReajuste
	contrato.MesInicioReajuste = body.MesInicioReajuste
	if missing := contrato.MissingFields(); missing != "" {
		tx.Rollback()
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}

	if err := tx.Save(contrato).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	tx.Commit()

	c.Status(http.StatusNoContent)
}

// DELETE /api/contratos/:id
// Somente o proprietário. Remove em cascata serviços, medições,
// pagamentos e compartilhamentos na mesma transação.
func DeleteContrato(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()
	contrato, err := access.Authorize(tx, usuario.ID, id, access.Own)
	if err != nil {
		tx.Rollback()
		RespondAccessError(c, err)
		return
	}

	var servicos []models.Servico
	if err := tx.Where("contrato_id = ?", id).Find(&servicos).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	for _, servico := range servicos {
		if err := tx.Where("servico_id = ?", servico.ID).Delete(&models.Medicao{}).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := tx.Where("contrato_id = ?", id).Delete(&models.Servico{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Where("contrato_id = ?", id).Delete(&models.PagamentoMensal{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Where("contrato_id = ?", id).Delete(&models.ContratoCompartilhado{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Delete(contrato).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	tx.Commit()

	c.Status(http.StatusNoContent)
}

// === Compartilhamento ===

// GET /api/contratos/:id/compartilhamentos (somente proprietário)
func GetCompartilhamentos(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if _, err := access.Authorize(db, usuario.ID, id, access.Own); err != nil {
		RespondAccessError(c, err)
		return
	}

	var compartilhamentos []models.ContratoCompartilhado
	if err := db.Where("contrato_id = ?", id).Find(&compartilhamentos).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]CompartilhamentoResponse, 0, len(compartilhamentos))
	for _, cc := range compartilhamentos {
		var grantee models.Usuario
		db.Where("id = ?", cc.UsuarioID).First(&grantee)
		out = append(out, CompartilhamentoResponse{
			ID:                   cc.ID,
			UsuarioID:            cc.UsuarioID,
			UsuarioNome:          grantee.Nome,
			UsuarioEmail:         grantee.Email,
			PodeEditar:           cc.PodeEditar,
			DataCompartilhamento: cc.DataCompartilhamento,
		})
	}
	RespondSuccess(c, gin.H{"compartilhamentos": out})
}

// POST /api/contratos/:id/compartilhar (somente proprietário)
// Se já existe compartilhamento para o par (contrato, usuário),
// atualiza a flag pode_editar ao invés de falhar.
func CompartilharContrato(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	var req CompartilharRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()
	if _, err := access.Authorize(tx, usuario.ID, id, access.Own); err != nil {
		tx.Rollback()
		RespondAccessError(c, err)
		return
	}

	if req.UsuarioID == usuario.ID {
		tx.Rollback()
		RespondError(c, "Você não pode compartilhar um contrato consigo mesmo", http.StatusBadRequest)
		return
	}

	var destino models.Usuario
	if err := tx.Where("id = ?", req.UsuarioID).First(&destino).Error; err != nil {
		tx.Rollback()
		RespondError(c, "Usuário não encontrado", http.StatusBadRequest)
		return
	}

	var existente models.ContratoCompartilhado
	err := tx.Where("contrato_id = ? AND usuario_id = ?", id, req.UsuarioID).
		First(&existente).Error
	if err == nil {
		existente.PodeEditar = req.PodeEditar
		if err := tx.Save(&existente).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		tx.Commit()
		RespondSuccess(c, gin.H{"compartilhamento": CompartilhamentoResponse{
			ID:                   existente.ID,
			UsuarioID:            existente.UsuarioID,
			UsuarioNome:          destino.Nome,
			UsuarioEmail:         destino.Email,
			PodeEditar:           existente.PodeEditar,
			DataCompartilhamento: existente.DataCompartilhamento,
		}})
		return
	}

	now := time.Now()
	compartilhamento := models.ContratoCompartilhado{
		ID:                   uuid.New(),
		ContratoID:           id,
		UsuarioID:            req.UsuarioID,
		PodeEditar:           req.PodeEditar,
		DataCompartilhamento: &now,
	}
	if err := tx.Create(&compartilhamento).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{"compartilhamento": CompartilhamentoResponse{
		ID:                   compartilhamento.ID,
		UsuarioID:            compartilhamento.UsuarioID,
		UsuarioNome:          destino.Nome,
		UsuarioEmail:         destino.Email,
		PodeEditar:           compartilhamento.PodeEditar,
		DataCompartilhamento: compartilhamento.DataCompartilhamento,
	}})
}

// DELETE /api/contratos/:id/compartilhar/:usuarioId (somente proprietário)
func RemoverCompartilhamento(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	destinoID, ok := ParamUUID(c, "usuarioId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()
	if _, err := access.Authorize(tx, usuario.ID, id, access.Own); err != nil {
		tx.Rollback()
		RespondAccessError(c, err)
		return
	}

	var compartilhamento models.ContratoCompartilhado
	err := tx.Where("contrato_id = ? AND usuario_id = ?", id, destinoID).
		First(&compartilhamento).Error
	if err != nil {
		tx.Rollback()
		RespondError(c, "compartilhamento não encontrado", http.StatusNotFound)
		return
	}

	if err := tx.Delete(&compartilhamento).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	tx.Commit()

	c.Status(http.StatusNoContent)
}

// === Pagamentos mensais ===

// GET /api/contratos/:id/pagamentos
func GetPagamentos(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if _, err := access.Authorize(db, usuario.ID, id, access.View); err != nil {
		RespondAccessError(c, err)
		return
	}

	var pagamentos []models.PagamentoMensal
	if err := db.Where("contrato_id = ?", id).Order("ordem asc").Find(&pagamentos).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"pagamentos": pagamentos})
}

// PUT /api/contratos/:id/pagamentos/:ordem
// Upsert por (contrato, ordem): cria o mês se ainda não existe.
func AtualizarPagamento(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	ordem, ok := ParamInt(c, "ordem")
	if !ok {
		return
	}

	var body models.PagamentoMensal
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()
	if _, err := access.Authorize(tx, usuario.ID, id, access.Edit); err != nil {
		tx.Rollback()
		RespondAccessError(c, err)
		return
	}

	var pagamento models.PagamentoMensal
	err := tx.Where("contrato_id = ? AND ordem = ?", id, ordem).First(&pagamento).Error
	if err != nil {
		pagamento = models.PagamentoMensal{
			ID:         uuid.New(),
			ContratoID: id,
			Ordem:      ordem,
			Mes:        body.Mes,
			Valor:      body.Valor,
		}
		if err := tx.Create(&pagamento).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		pagamento.Mes = body.Mes
		pagamento.Valor = body.Valor
		if err := tx.Save(&pagamento).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}
	tx.Commit()

	c.Status(http.StatusNoContent)
}
