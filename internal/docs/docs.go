// Package docs registra en swag el documento OpenAPI de las rutas del
// front; router lo sirve en /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["infra"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/login": {
            "get": {
                "tags": ["auth"],
                "summary": "Destino post-login saneado y URL del login Google",
                "parameters": [{"type": "string", "name": "next", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["auth"],
                "summary": "Login con email y senha",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "datos faltantes"}, "401": {"description": "credenciales inválidas"}}
            }
        },
        "/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Registro (nome, email, senha)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/logout": {
            "post": {"tags": ["auth"], "summary": "Cierra sesión; siempre borra credenciales locales", "responses": {"200": {"description": "OK"}}}
        },
        "/login/google": {
            "get": {
                "tags": ["auth"],
                "summary": "Redirige al flujo OAuth del backend",
                "parameters": [{"type": "string", "name": "next", "in": "query"}],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/auth/capture": {
            "get": {
                "tags": ["auth"],
                "summary": "Guarda el token del callback OAuth y redirige a next",
                "parameters": [
                    {"type": "string", "name": "token", "in": "query", "required": true},
                    {"type": "string", "name": "next", "in": "query"}
                ],
                "responses": {"302": {"description": "Found"}, "400": {"description": "sin token"}}
            }
        },
        "/me": {
            "get": {"tags": ["auth"], "summary": "Usuario de la sesión", "responses": {"200": {"description": "OK"}, "401": {"description": "sin sesión"}}}
        },
        "/perfil-adotante": {
            "get": {"tags": ["perfil"], "summary": "Perfil de adoptante", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["perfil"],
                "summary": "Guarda el perfil de adoptante",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Profile"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "campos obligatorios"}}
            }
        },
        "/animais": {
            "get": {
                "tags": ["animais"],
                "summary": "Listado (all | mine | recs) con filtros",
                "parameters": [
                    {"type": "string", "name": "tab", "in": "query", "enum": ["all", "mine", "recs"]},
                    {"type": "string", "name": "especie", "in": "query"},
                    {"type": "string", "name": "idade", "in": "query", "enum": ["filhote", "adulto", "idoso"]},
                    {"type": "string", "name": "porte", "in": "query"},
                    {"type": "string", "name": "cidade", "in": "query"},
                    {"type": "boolean", "name": "refresh", "in": "query", "description": "recarga desde el backend"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["animais"],
                "summary": "Nuevo anuncio",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AnimalInput"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "campos obligatorios"}}
            }
        },
        "/animais/{id}": {
            "get": {
                "tags": ["animais"],
                "summary": "Detalle",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "no existe"}}
            },
            "put": {
                "tags": ["animais"],
                "summary": "Edita un anuncio",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AnimalInput"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/animais/{id}/delete": {
            "post": {
                "tags": ["animais"],
                "summary": "Borra un anuncio (requiere confirm=true)",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "name": "confirm", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "428": {"description": "falta confirmación"}}
            }
        },
        "/animais/{id}/adopt": {
            "post": {
                "tags": ["animais"],
                "summary": "Marca o deshace adopción (requiere confirm=true)",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AdoptRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "428": {"description": "falta confirmación"}}
            }
        },
        "/metricas/resumo": {
            "get": {"tags": ["metricas"], "summary": "Totales y distribución por especie", "responses": {"200": {"description": "OK"}}}
        },
        "/metricas/adocoes": {
            "get": {
                "tags": ["metricas"],
                "summary": "Adopciones por día",
                "parameters": [{"type": "integer", "name": "days", "in": "query", "default": 7}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "senha": {"type": "string"}, "next": {"type": "string"}}
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {"nome": {"type": "string"}, "email": {"type": "string"}, "senha": {"type": "string"}, "next": {"type": "string"}}
        },
        "Profile": {
            "type": "object",
            "properties": {
                "tipo_moradia": {"type": "string"},
                "tem_criancas": {"type": "integer"},
                "tempo_disponivel_horas_semana": {"type": "integer"},
                "estilo_vida": {"type": "string"}
            }
        },
        "AnimalInput": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "especie": {"type": "string"},
                "raca": {"type": "string"},
                "idade": {"type": "string"},
                "porte": {"type": "string"},
                "energia": {"type": "string"},
                "bom_com_criancas": {"type": "boolean"},
                "descricao": {"type": "string"},
                "cidade": {"type": "string"},
                "photo_url": {"type": "string"},
                "donor_name": {"type": "string"},
                "donor_whatsapp": {"type": "string"}
            }
        },
        "AdoptRequest": {
            "type": "object",
            "properties": {"action": {"type": "string", "enum": ["mark", "undo"]}, "confirm": {"type": "boolean"}}
        }
    }
}`

// SwaggerInfo son los metadatos editables del documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AdoptMe Web",
	Description:      "Front server-side de AdoptMe: sesión, listado de animales, recomendaciones y métricas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
