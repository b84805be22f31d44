// Package draft implementa o estado do formulário de composição de pedido:
// a coleção ordenada de itens, os totais derivados, a validação e o envio
// para a API de negócio.
package draft

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/viniciusbarbosa/pedidos-backoffice/internal/catalog"
	"github.com/viniciusbarbosa/pedidos-backoffice/internal/model"
)

// ErrIndexOutOfRange é um erro interno: nenhum caminho normal da tela
// produz um índice inválido. O chamador registra no log e não faz nada.
var ErrIndexOutOfRange = errors.New("índice de item fora da coleção")

// AppendBlank acrescenta um item em branco no fim da coleção: sem produto,
// unidade inteira, quantidade 1, preço 0. Nunca mescla com linha existente.
func AppendBlank(d *model.Draft) *model.DraftItem {
	d.Items = append(d.Items, model.DraftItem{
		DraftID:   d.ID,
		Position:  len(d.Items),
		UnityType: model.UnityTypeUnit,
		Quantity:  1,
		Price:     0,
	})
	return &d.Items[len(d.Items)-1]
}

// SelectProduct aplica a seleção de produto na linha index. Id vazio limpa
// os campos de produto da linha preservando a quantidade; id válido copia
// nome, tipo de unidade e preço da foto do catálogo, também preservando a
// quantidade — a unidade só muda em troca genuína de produto, não em
// edição de quantidade. Troca de produto descarta subprodutos da linha.
func SelectProduct(d *model.Draft, index int, productID string, cache *catalog.Cache) error {
	if index < 0 || index >= len(d.Items) {
		return ErrIndexOutOfRange
	}
	item := &d.Items[index]

	if strings.TrimSpace(productID) == "" {
		item.ProductID = ""
		item.Name = ""
		item.UnityType = model.UnityTypeUnit
		item.Price = 0
		item.SubProducts = nil
		return nil
	}

	product, ok := cache.FindByID(productID)
	if !ok {
		return fmt.Errorf("produto %s não está no catálogo carregado", productID)
	}

	item.ProductID = product.ID
	item.Name = product.Name
	item.UnityType = product.UnityType
	item.Price = product.Value
	item.SubProducts = nil
	return nil
}

// SetQuantity atualiza a quantidade da linha index. Entrada vazia ou não
// numérica vira 0, não é rejeitada; a validação do envio é quem barra
// quantidade zero. ParseFloat aceita "NaN" e "Inf", que não servem como
// quantidade e também viram 0.
func SetQuantity(d *model.Draft, index int, raw string) error {
	if index < 0 || index >= len(d.Items) {
		return ErrIndexOutOfRange
	}
	qty, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) || qty < 0 {
		qty = 0
	}
	d.Items[index].Quantity = qty
	return nil
}

// Remove apaga a linha index; as posteriores descem uma posição, então
// índices guardados antes da remoção ficam inválidos.
func Remove(d *model.Draft, index int) error {
	if index < 0 || index >= len(d.Items) {
		return ErrIndexOutOfRange
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	renumber(d)
	return nil
}

// AddFromCatalog acrescenta uma linha a partir da navegação do catálogo.
// Sempre acrescenta, mesmo que o produto já esteja no pedido: duas adições
// do "mesmo" produto podem ter subprodutos diferentes.
func AddFromCatalog(d *model.Draft, product model.Product, quantity float64, subProductIDs []string, cache *catalog.Cache) *model.DraftItem {
	if quantity <= 0 {
		quantity = product.UnityType.MinQuantity()
	}

	var subs []model.SubProduct
	for _, id := range subProductIDs {
		sp, ok := cache.FindByID(id)
		if !ok {
			continue
		}
		subs = append(subs, model.SubProduct{ProductID: sp.ID, Name: sp.Name})
	}

	d.Items = append(d.Items, model.DraftItem{
		DraftID:     d.ID,
		Position:    len(d.Items),
		ProductID:   product.ID,
		Name:        product.Name,
		UnityType:   product.UnityType,
		Quantity:    quantity,
		Price:       product.Value,
		SubProducts: subs,
	})
	return &d.Items[len(d.Items)-1]
}

func renumber(d *model.Draft) {
	for i := range d.Items {
		d.Items[i].Position = i
	}
}
