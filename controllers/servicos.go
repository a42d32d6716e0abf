package controllers

import (
	"net/http"

	"cronograma/access"
	dbpkg "cronograma/db"
	"cronograma/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MedicaoRequest struct {
	Ordem     int     `json:"ordem" form:"ordem"`
	Mes       string  `json:"mes" form:"mes"`
	Previsto  float64 `json:"previsto" form:"previsto"`
	Realizado float64 `json:"realizado" form:"realizado"`
}

type ServicoRequest struct {
	Item       string           `json:"item" form:"item"`
	Servico    string           `json:"servico" form:"servico"`
	ContratoID uuid.UUID        `json:"contrato_id" form:"contrato_id"`
	Medicoes   []MedicaoRequest `json:"medicoes" form:"medicoes"`
}

func somaPrevisto(medicoes []MedicaoRequest) float64 {
	total := 0.0
	for _, m := range medicoes {
		total += m.Previsto
	}
	return total
}

// GET /api/servicos?contrato_id=...
func GetServicos(c *gin.Context) {
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

	raw := c.Query("contrato_id")
	if raw == "" {
		RespondError(c, "contrato_id é obrigatório", http.StatusBadRequest)
		return
	}
	contratoID, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, "contrato_id inválido", http.StatusBadRequest)
		return
	}

	if _, err := access.Authorize(db, usuario.ID, contratoID, access.View); err != nil {
		RespondAccessError(c, err)
		return
	}

	var servicos []models.Servico
	if err := db.Where("contrato_id = ?", contratoID).Find(&servicos).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	for i := range servicos {
		db.Where("servico_id = ?", servicos[i].ID).Order("ordem asc").Find(&servicos[i].Medicoes)
	}

	RespondSuccess(c, gin.H{"servicos": servicos})
}

// GET /api/servicos/:id
func GetServico(c *gin.Context) {
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

	var servico models.Servico
	if err := db.Where("id = ?", id).First(&servico).Error; err != nil {
		RespondError(c, "serviço não encontrado", http.StatusNotFound)
		return
	}

	if _, err := access.Authorize(db, usuario.ID, servico.ContratoID, access.View); err != nil {
		RespondAccessError(c, err)
		return
	}

	db.Where("servico_id = ?", servico.ID).Order("ordem asc").Find(&servico.Medicoes)

	RespondSuccess(c, gin.H{"servico": servico})
}

// POST /api/servicos
// Cria o serviço já com as medições; ValorTotal é a soma do previsto.
func CreateServico(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req ServicoRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	servico := models.Servico{
		Item:        req.Item,
		ServicoNome: req.Servico,
		ContratoID:  req.ContratoID,
	}
	if missing := servico.MissingFields(); missing != "" {
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}

	tx := db.Begin()
	if _, err := access.Authorize(tx, usuario.ID, req.ContratoID, access.Edit); err != nil {
		tx.Rollback()
		RespondAccessError(c, err)
		return
	}

	servico.ID = uuid.New()
	servico.ValorTotal = somaPrevisto(req.Medicoes)
	if err := tx.Create(&servico).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	for _, m := range req.Medicoes {
		medicao := models.Medicao{
			ID:        uuid.New(),
			Ordem:     m.Ordem,
			Mes:       m.Mes,
			Previsto:  m.Previsto,
			Realizado: m.Realizado,
			ServicoID: servico.ID,
		}
		if err := tx.Create(&medicao).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		servico.Medicoes = append(servico.Medicoes, medicao)
	}
	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{"servico": servico})
}

// PUT /api/servicos/:id
// Substitui o conjunto de medições e recalcula o ValorTotal.
func UpdateServico(c *gin.Context) {
	usuario, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	var req ServicoRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var servico models.Servico
	if err := db.Where("id = ?", id).First(&servico).Error; err != nil {
		RespondError(c, "serviço não encontrado", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if _, err := access.Authorize(tx, usuario.ID, servico.ContratoID, access.Edit); err != nil {
		tx.Rollback()
		RespondAccessError(c, err)
		return
	}

	servico.Item = req.Item
	servico.ServicoNome = req.Servico
	servico.ValorTotal = somaPrevisto(req.Medicoes)
	if missing := servico.MissingFields(); missing != "" {
		tx.Rollback()
		RespondError(c, "Faltando campo "+missing, http.StatusBadRequest)
		return
	}

	if err := tx.Where("servico_id = ?", servico.ID).Delete(&models.Medicao{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	for _, m := range req.Medicoes {
		medicao := models.Medicao{
			ID:        uuid.New(),
			Ordem:     m.Ordem,
			Mes:       m.Mes,
			Previsto:  m.Previsto,
			Realizado: m.Realizado,
			ServicoID: servico.ID,
		}
		if err := tx.Create(&medicao).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := tx.Save(&servico).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	tx.Commit()

	c.Status(http.StatusNoContent)
}

// PUT /api/servicos/:id/medicoes/:ordem
// A medição é endereçada pela Ordem, não por índice de lista; se o
// mês ainda não existe, é criado (posições esparsas são válidas).
func UpdateMedicao(c *gin.Context) {
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

	var req MedicaoRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var servico models.Servico
	if err := db.Where("id = ?", id).First(&servico).Error; err != nil {
		RespondError(c, "serviço não encontrado", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if _, err := access.Authorize(tx, usuario.ID, servico.ContratoID, access.Edit); err != nil {
		tx.Rollback()
		RespondAccessError(c, err)
		return
	}

	// A posição vem sempre da URL; a ordem do corpo é ignorada.
	var medicao models.Medicao
	err := tx.Where("servico_id = ? AND ordem = ?", servico.ID, ordem).First(&medicao).Error
	if err != nil {
		medicao = models.Medicao{
			ID:        uuid.New(),
			Ordem:     ordem,
			Mes:       req.Mes,
			Previsto:  req.Previsto,
			Realizado: req.Realizado,
			ServicoID: servico.ID,
		}
		if err := tx.Create(&medicao).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		medicao.Mes = req.Mes
		medicao.Previsto = req.Previsto
		medicao.Realizado = req.Realizado
		if err := tx.Save(&medicao).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}

	total := 0.0
	row := tx.Model(&models.Medicao{}).
		Where("servico_id = ?", servico.ID).
		Select("COALESCE(SUM(previsto), 0)").Row()
	if err := row.Scan(&total); err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	servico.ValorTotal = total
	if err := tx.Save(&servico).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	tx.Commit()

	c.Status(http.StatusNoContent)
}

// DELETE /api/servicos/:id
func DeleteServico(c *gin.Context) {
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

	var servico models.Servico
	if err := db.Where("id = ?", id).First(&servico).Error; err != nil {
		RespondError(c, "serviço não encontrado", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if _, err := access.Authorize(tx, usuario.ID, servico.ContratoID, access.Edit); err != nil {
		tx.Rollback()
		RespondAccessError(c, err)
		return
	}

	if err := tx.Where("servico_id = ?", servico.ID).Delete(&models.Medicao{}).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := tx.Delete(&servico).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	tx.Commit()

	c.Status(http.StatusNoContent)
}
