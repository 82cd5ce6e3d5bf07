package wire

// Element paths into decoded SOAP bodies.
const (
	SoapRequestCommandPath  = "soap:Envelope/soap:Body/t:tanium_soap_request/command"
	SoapRequestObjectsPath  = "soap:Envelope/soap:Body/t:tanium_soap_request/object_list"
	SoapResponseCommandPath = "soap:Envelope/soap:Body/t:return/command"
	SoapResultXMLPath       = "soap:Envelope/soap:Body/t:return/ResultXML"
	SoapResultObjectPath    = "soap:Envelope/soap:Body/t:return/result_object"
)

// SoapEnvelope builds the request envelope for command. The result is ready
// for EncodeXML.
func SoapEnvelope(command string, objectList, options any) map[string]any {
	request := map[string]any{
		"command":     command,
		"object_list": objectList,
		"options":     options,
	}
	body := map[string]any{
		"@xmlns:t":              "urn:TaniumSOAP",
		"@xmlns:xsi":            "http://www.w3.org/2001/XMLSchema-instance",
		"t:tanium_soap_request": request,
	}
	env := map[string]any{
		"@soap:encodingStyle": "http://schemas.xmlsoap.org/soap/encoding/",
		"@xmlns:soap":         "http://schemas.xmlsoap.org/soap/envelope/",
		"@xmlns:xsd":          "http://www.w3.org/2001/XMLSchema",
		"soap:Body":           body,
	}
	return map[string]any{"soap:Envelope": env}
}
