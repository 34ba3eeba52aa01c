package comentario

import "time"

type AuthorDTO struct {
	Type string `json:"type"` // "cliente" | "corretor" | "admin" | "system"
	ID   *uint  `json:"id,omitempty"`
	Nome string `json:"nome,omitempty"`
}

type CommentDTO struct {
	ID        uint      `json:"ID"`
	VendaID   uint      `json:"vendaId"`
	Texto     string    `json:"texto"`
	System    bool      `json:"system"`
	CreatedAt time.Time `json:"CreatedAt"`
	Author    AuthorDTO `json:"author"`
}

func toDTO(c Comentario) CommentDTO {
	out := CommentDTO{
		ID:        c.ID,
		VendaID:   c.VendaID,
		Texto:     c.Texto,
		System:    c.System,
		CreatedAt: c.CreatedAt,
	}

	if c.System {
		out.Author = AuthorDTO{Type: "system", Nome: "Sistema"}
		return out
	}

	id := c.AutorID
	out.Author = AuthorDTO{Type: c.AutorPapel, ID: &id}
	return out
}

func toDTOs(list []Comentario) []CommentDTO {
	out := make([]CommentDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c))
	}
	return out
}
