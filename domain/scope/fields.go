package scope

// Field identifies a canonical spreadsheet column.
type Field string

const (
	FieldYearOrGrade     Field = "ano_serie"
	FieldTerm            Field = "bimestre"
	FieldSkill           Field = "habilidade"
	FieldKnowledgeObject Field = "objeto_conhecimento"
	FieldContent         Field = "conteudo"
	FieldObjectives      Field = "objetivos"
)

// MandatoryFields lists the five fields a record cannot be emitted without.
// FieldObjectives is deliberately absent.
func MandatoryFields() []Field {
	return []Field{
		FieldYearOrGrade,
		FieldTerm,
		FieldSkill,
		FieldKnowledgeObject,
		FieldContent,
	}
}

func (f Field) String() string { return string(f) }
