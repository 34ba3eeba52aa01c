package checklist

import "gorm.io/gorm"

// SemearModeloTrust instala a primeira versão do checklist do produto
// "trust" em banco recém-criado. Não mexe em nada se o produto já tiver
// algum modelo cadastrado.
func SemearModeloTrust(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Modelo{}).Where("produto = ?", "trust").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	m := Modelo{
		Produto: "trust",
		Versao:  1,
		Titulo:  "Checklist do produto Trust",
		Status:  ModeloAtivo,
		Etapas: []Etapa{
			{
				Chave: "abertura", Rotulo: "Abertura e cadastro", Ordem: 1, Peso: 10,
				Tarefas: []Tarefa{
					{
						Chave: "dados-cadastrais", Rotulo: "Enviar documentos cadastrais",
						PapelResponsavel: ResponsavelCliente, Visibilidade: VisibilidadeTodos,
						TipoAcao: TipoAcaoUpload, ExigeRevisao: true, ExigeEvidencia: true,
					},
					{
						Chave: "analise-perfil", Rotulo: "Análise interna de perfil",
						PapelResponsavel: ResponsavelAdmin, Visibilidade: VisibilidadeAdmin,
						TipoAcao: TipoAcaoInterna,
					},
				},
			},
			{
				Chave: "documentacao", Rotulo: "Documentação dos bens", Ordem: 2, Peso: 30,
				Tarefas: []Tarefa{
					{
						Chave: "contrato-social", Rotulo: "Enviar contrato social / estatuto",
						PapelResponsavel: ResponsavelCliente, Visibilidade: VisibilidadeTodos,
						TipoAcao: TipoAcaoUpload, ExigeRevisao: true, ExigeEvidencia: true,
					},
					{
						Chave: "escritura-bem", Rotulo: "Enviar escritura do bem",
						PapelResponsavel: ResponsavelCliente, Visibilidade: VisibilidadeTodos,
						TipoAcao: TipoAcaoUpload, ExigeRevisao: true, ExigeEvidencia: true,
						Repetivel: true, GrupoRepeticao: "bens",
					},
					{
						Chave: "registro-bem", Rotulo: "Registrar o bem no trust",
						PapelResponsavel: ResponsavelAdmin, Visibilidade: VisibilidadeAdmin,
						TipoAcao: TipoAcaoInterna,
						Repetivel: true, GrupoRepeticao: "bens",
					},
				},
			},
			{
				Chave: "fechamento", Rotulo: "Fechamento", Ordem: 3, Peso: 20,
				Tarefas: []Tarefa{
					{
						Chave: "termo-aceite", Rotulo: "Enviar termo de aceite assinado",
						PapelResponsavel: ResponsavelCliente, Visibilidade: VisibilidadeTodos,
						TipoAcao: TipoAcaoUpload, ExigeRevisao: true, ExigeEvidencia: true,
					},
					{
						Chave: "emissao", Rotulo: "Emitir a apólice",
						PapelResponsavel: ResponsavelAdmin, Visibilidade: VisibilidadeAdmin,
						TipoAcao: TipoAcaoInterna,
					},
				},
			},
		},
	}
	return db.Create(&m).Error
}
