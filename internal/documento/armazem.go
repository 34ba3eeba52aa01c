package documento

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Armazem abstrai o serviço externo de guarda de arquivos. O resto do sistema
// só conhece o ID opaco devolvido aqui e a URL de visualização.
type Armazem interface {
	Guardar(db *gorm.DB, nome, contentType string, conteudo []byte, enviadoPor uint) (*Documento, error)
	Ler(id string) ([]byte, error)
	URL(id string) string
}

var ErrDocumentoNaoEncontrado = errors.New("documento não encontrado")

// ArmazemMemoria guarda o conteúdo em memória. Serve para desenvolvimento e
// testes; em produção o conteúdo fica no bucket e só os metadados no banco.
type ArmazemMemoria struct {
	mu       sync.RWMutex
	arquivos map[string][]byte
}

func NewArmazemMemoria() *ArmazemMemoria {
	return &ArmazemMemoria{arquivos: make(map[string][]byte)}
}

func (a *ArmazemMemoria) Guardar(db *gorm.DB, nome, contentType string, conteudo []byte, enviadoPor uint) (*Documento, error) {
	doc := &Documento{
		ID:          uuid.NewString(),
		Nome:        nome,
		ContentType: contentType,
		Tamanho:     int64(len(conteudo)),
		EnviadoPor:  enviadoPor,
	}
	if err := db.Create(doc).Error; err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.arquivos[doc.ID] = conteudo
	a.mu.Unlock()
	return doc, nil
}

func (a *ArmazemMemoria) Ler(id string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	conteudo, ok := a.arquivos[id]
	if !ok {
		return nil, ErrDocumentoNaoEncontrado
	}
	return conteudo, nil
}

func (a *ArmazemMemoria) URL(id string) string {
	return "/documentos/" + id + "/visualizar"
}
