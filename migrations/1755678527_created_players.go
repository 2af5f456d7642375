package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_1687431435",
			"created": "2025-08-20 08:28:47.605Z",
			"updated": "2025-08-20 08:28:47.605Z",
			"name": "players",
			"type": "base",
			"system": false,
			"fields": [
				{
					"autogeneratePattern": "[a-z0-9]{15}",
					"hidden": false,
					"id": "text3208210256",
					"max": 15,
					"min": 15,
					"name": "id",
					"pattern": "^[a-z0-9]+$",
					"presentable": false,
					"primaryKey": true,
					"required": true,
					"system": true,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text1146066909",
					"max": 0,
					"min": 0,
					"name": "firstname",
					"pattern": "",
					"presentable": true,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text1146066910",
					"max": 0,
					"min": 0,
					"name": "lastname",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text3386113964",
					"max": 0,
					"min": 0,
					"name": "profile",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text2211822612",
					"max": 0,
					"min": 0,
					"name": "mobileno",
					"pattern": "^\\+91\\d{10}$",
					"presentable": false,
					"primaryKey": false,
					"required": true,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "select1498935872",
					"maxSelect": 1,
					"name": "intrestedsports",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "select",
					"values": [
						"football",
						"tennis",
						"badminton",
						"golf",
						"cricket",
						"swimming",
						"basketball"
					]
				},
				{
					"hidden": false,
					"id": "select1498935873",
					"maxSelect": 1,
					"name": "level",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "select",
					"values": [
						"beginner",
						"intermediate",
						"expert"
					]
				},
				{
					"hidden": false,
					"id": "number2138276713",
					"max": null,
					"min": 0,
					"name": "age",
					"onlyInt": true,
					"presentable": false,
					"required": false,
					"system": false,
					"type": "number"
				},
				{
					"hidden": false,
					"id": "bool2063623452",
					"name": "is_verified",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "bool"
				},
				{
					"hidden": false,
					"id": "text1587448267",
					"max": 0,
					"min": 0,
					"name": "location",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text3456121425",
					"max": 0,
					"min": 0,
					"name": "otp_order_id",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "json3015871884",
					"maxSize": 2000000,
					"name": "fav_turfs",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "json"
				},
				{
					"hidden": false,
					"id": "autodate2990389176",
					"name": "created",
					"onCreate": true,
					"onUpdate": false,
					"presentable": false,
					"system": false,
					"type": "autodate"
				},
				{
					"hidden": false,
					"id": "autodate3332085495",
					"name": "updated",
					"onCreate": true,
					"onUpdate": true,
					"presentable": false,
					"system": false,
					"type": "autodate"
				}
			],
			"indexes": [
				"CREATE UNIQUE INDEX ` + "`idx_players_mobileno`" + ` ON ` + "`players`" + ` (` + "`mobileno`" + `)"
			],
			"listRule": null,
			"viewRule": null,
			"createRule": null,
			"updateRule": null,
			"deleteRule": null
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_1687431435")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
