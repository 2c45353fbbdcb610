package request

// CustomerRequest is the body of the create and update customer calls.
// The name is checked by the service so the message matches the form's.
type CustomerRequest struct {
	Name    string `json:"nome"`
	Phone   string `json:"telefone"`
	Address string `json:"endereco"`
	CPF     string `json:"cpf"`
	RG      string `json:"rg"`
}
